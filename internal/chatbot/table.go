package chatbot

const (
	English = "en"
	Hindi   = "hi"
	Telugu  = "te"
)

// Entry is one row of the keyword table. The first entry with any keyword
// contained in the lower-cased message wins.
type Entry struct {
	Keywords    []string
	Reply       string
	Suggestions []string
}

// Language is a complete reply set for one language.
type Language struct {
	Code         string
	Entries      []Entry
	Fallback     string
	QuickReplies []string
}

var english = Language{
	Code: English,
	QuickReplies: []string{
		"What products do you offer?",
		"How does vermicompost work?",
		"Tell me about biogas plants",
		"How can I volunteer?",
		"Donation information",
	},
	Fallback: "Sorry, I didn't understand. You can contact us at info@karesave.org",
}

func init() {
	english.Entries = []Entry{
		{
			Keywords:    []string{"product", "offer", "line"},
			Reply:       "We offer 5 eco-friendly product lines: Happy Raithu (vermicompost), Gracious Gas (biogas units), SBL Pots (eco gardening pots), Clayer (clay water bottles), and Neem Brush (biodegradable toothbrushes).",
			Suggestions: []string{"Tell me more about vermicompost", "What are biogas units?", "Where can I see all products?"},
		},
		{
			Keywords:    []string{"vermicompost", "happy raithu"},
			Reply:       "Vermicompost uses earthworms to break down organic waste into nutrient-rich fertilizer. Our Happy Raithu vermicompost is perfect for gardens and farms!",
			Suggestions: []string{"How can I buy Happy Raithu?", "Is vermicompost safe for plants?", "What is the price?"},
		},
		{
			Keywords:    []string{"biogas", "gracious gas"},
			Reply:       "Gracious Gas biogas units convert organic waste into clean cooking gas. Available for domestic and commercial use.",
			Suggestions: []string{"How much does a biogas unit cost?", "How do I maintain it?", "Installation details?"},
		},
		{
			Keywords:    []string{"volunteer"},
			Reply:       "We'd love your help! Fill in the volunteer form on our Volunteer page and our team will get in touch.",
			Suggestions: []string{"What skills do you need?", "Donation information"},
		},
		{
			Keywords:    []string{"donat"},
			Reply:       "You can donate money or food on our Donation page. Food seekers such as orphanages and old age homes can request support too.",
			Suggestions: []string{"How can I volunteer?", "What products do you offer?"},
		},
		{
			Keywords:    []string{"hello", "hi", "hey"},
			Reply:       "Hello! I'm your Eco Assistant. How can I help you today?",
			Suggestions: english.QuickReplies,
		},
	}
}

var hindi = Language{
	Code: Hindi,
	Entries: []Entry{
		{
			Keywords:    []string{"उत्पाद", "प्रोडक्ट", "product"},
			Reply:       "हम 5 पर्यावरण-अनुकूल उत्पाद श्रृंखलाएँ देते हैं: हैप्पी रैथु (वर्मीकम्पोस्ट), ग्रेशियस गैस (बायोगैस यूनिट), एसबीएल पॉट्स, क्लेयर (मिट्टी की बोतलें) और नीम ब्रश।",
			Suggestions: []string{"वर्मीकम्पोस्ट क्या है?", "बायोगैस के बारे में बताइए"},
		},
		{
			Keywords:    []string{"वर्मीकम्पोस्ट", "खाद", "vermicompost"},
			Reply:       "वर्मीकम्पोस्ट केंचुओं की मदद से जैविक कचरे को पोषक खाद में बदलता है। हैप्पी रैथु वर्मीकम्पोस्ट बगीचों और खेतों के लिए उत्तम है!",
			Suggestions: []string{"कीमत क्या है?", "बायोगैस के बारे में बताइए"},
		},
		{
			Keywords:    []string{"बायोगैस", "गैस", "biogas"},
			Reply:       "ग्रेशियस गैस बायोगैस यूनिट जैविक कचरे को स्वच्छ रसोई गैस में बदलती है। घरेलू और व्यावसायिक उपयोग के लिए उपलब्ध।",
			Suggestions: []string{"बायोगैस यूनिट की कीमत?", "इंस्टॉलेशन की जानकारी?"},
		},
		{
			Keywords:    []string{"नमस्ते", "हेलो", "namaste"},
			Reply:       "नमस्ते! मैं आपका इको असिस्टेंट हूँ। मैं आपकी कैसे मदद कर सकता हूँ?",
			Suggestions: []string{"आप कौन से उत्पाद देते हैं?", "वर्मीकम्पोस्ट क्या है?", "बायोगैस के बारे में बताइए"},
		},
	},
	Fallback:     "क्षमा करें, मैं समझ नहीं पाया। आप हमसे info@karesave.org पर संपर्क कर सकते हैं।",
	QuickReplies: []string{"आप कौन से उत्पाद देते हैं?", "वर्मीकम्पोस्ट क्या है?", "बायोगैस के बारे में बताइए"},
}

var telugu = Language{
	Code: Telugu,
	Entries: []Entry{
		{
			Keywords:    []string{"ఉత్పత్తు", "product"},
			Reply:       "మేము 5 పర్యావరణ హిత ఉత్పత్తి శ్రేణులు అందిస్తున్నాము: హ్యాపీ రైతు (వర్మీకంపోస్ట్), గ్రేషియస్ గ్యాస్ (బయోగ్యాస్ యూనిట్లు), ఎస్‌బీఎల్ పాట్స్, క్లేయర్ (మట్టి సీసాలు) మరియు నీమ్ బ్రష్.",
			Suggestions: []string{"వర్మీకంపోస్ట్ అంటే ఏమిటి?", "బయోగ్యాస్ గురించి చెప్పండి"},
		},
		{
			Keywords:    []string{"వర్మీకంపోస్ట్", "ఎరువు", "vermicompost"},
			Reply:       "వర్మీకంపోస్ట్ వానపాముల సహాయంతో సేంద్రియ వ్యర్థాలను పోషకాల ఎరువుగా మారుస్తుంది. హ్యాపీ రైతు వర్మీకంపోస్ట్ తోటలు మరియు పొలాలకు అనువైనది!",
			Suggestions: []string{"ధర ఎంత?", "బయోగ్యాస్ గురించి చెప్పండి"},
		},
		{
			Keywords:    []string{"బయోగ్యాస్", "గ్యాస్", "biogas"},
			Reply:       "గ్రేషియస్ గ్యాస్ బయోగ్యాస్ యూనిట్లు సేంద్రియ వ్యర్థాలను శుభ్రమైన వంట గ్యాస్‌గా మారుస్తాయి.",
			Suggestions: []string{"బయోగ్యాస్ యూనిట్ ధర?", "ఇన్‌స్టాలేషన్ వివరాలు?"},
		},
		{
			Keywords:    []string{"నమస్కారం", "హలో", "namaskaram"},
			Reply:       "నమస్కారం! నేను మీ ఎకో అసిస్టెంట్‌ని. నేను మీకు ఎలా సహాయం చేయగలను?",
			Suggestions: []string{"మీరు ఏ ఉత్పత్తులు అందిస్తారు?", "వర్మీకంపోస్ట్ అంటే ఏమిటి?", "బయోగ్యాస్ గురించి చెప్పండి"},
		},
	},
	Fallback:     "క్షమించండి, నాకు అర్థం కాలేదు. info@karesave.org లో మమ్మల్ని సంప్రదించండి.",
	QuickReplies: []string{"మీరు ఏ ఉత్పత్తులు అందిస్తారు?", "వర్మీకంపోస్ట్ అంటే ఏమిటి?", "బయోగ్యాస్ గురించి చెప్పండి"},
}

// DefaultLanguages returns the built-in tables keyed by code.
func DefaultLanguages() map[string]Language {
	return map[string]Language{
		English: english,
		Hindi:   hindi,
		Telugu:  telugu,
	}
}
