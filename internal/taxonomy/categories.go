package taxonomy

import "github.com/janscope/annotator/internal/domain"

// DefaultCategories returns the built-in event taxonomy. Keyword tiers
// were curated from a hand-labelled corpus of Chhattisgarh political
// posts; weights reflect how costly a miss on that label is for the
// review team. अन्य is deliberately absent: it is the fallback label,
// never scored.
func DefaultCategories() []Category {
	return []Category{
		{
			Label:  domain.CategoryMeeting,
			Weight: 1.0,
			Strong: []string{"बैठक", "समीक्षा", "मीटिंग"},
			Medium: []string{"अधिकारी", "निर्देश", "चर्चा"},
			Weak:   []string{"आयोजित", "संपन्न"},
		},
		{
			Label:  domain.CategoryOutreach,
			Weight: 1.2,
			Strong: []string{"जनसम्पर्क", "जनदर्शन", "मुलाकात", "भेंट", "दौरा", "प्रवास", "आगमन"},
			Medium: []string{"स्वागत", "अभिनंदन", "चर्चा", "संवाद"},
			Weak:   []string{"शामिल", "उपस्थित", "कार्यक्रम"},
		},
		{
			Label:  domain.CategoryAdminReview,
			Weight: 1.2,
			Strong: []string{"कलेक्टर", "एसपी", "कमिश्नर", "समीक्षा बैठक", "टीएल"},
			Medium: []string{"निर्देश", "पालन", "रिपोर्ट"},
			Weak:   []string{"विभाग"},
		},
		{
			Label:  domain.CategoryInspection,
			Weight: 1.1,
			Strong: []string{"निरीक्षण", "जायजा", "अवलोकन"},
			Medium: []string{"स्थल", "कार्य"},
			Weak:   []string{"भ्रमण"},
		},
		{
			Label:  domain.CategoryRally,
			Weight: 1.1,
			Strong: []string{"रैली", "जुलूस", "प्रदर्शन", "सभा"},
			Medium: []string{"नारेबाजी", "भीड़"},
			Weak:   []string{"शामिल"},
		},
		{
			Label:  domain.CategoryCampaign,
			Weight: 1.2,
			Strong: []string{"प्रचार", "जनसंपर्क", "वोट", "मतदान"},
			Medium: []string{"प्रत्याशी", "उम्मीदवार"},
			Weak:   []string{"समर्थन"},
		},
		{
			Label:  domain.CategoryInauguration,
			Weight: 1.2,
			Strong: []string{"उद्घाटन", "लोकार्पण", "शिलान्यास", "भूमिपूजन"},
			Medium: []string{"सौगात", "शुभारंभ"},
			Weak:   []string{"विकास कार्य"},
		},
		{
			Label:  domain.CategoryScheme,
			Weight: 1.2,
			Strong: []string{"योजना", "घोषणा", "लागू", "शुभारंभ"},
			Medium: []string{"लाभार्थी", "वितरण", "खाता"},
			Weak:   []string{"सरकार", "पहल"},
		},
		{
			Label:  domain.CategoryCultural,
			Weight: 1.1,
			Strong: []string{"पूजा", "अर्चना", "दर्शन", "आरती", "मंदिर", "महोत्सव", "जयंती", "पर्व"},
			Medium: []string{"पुण्यतिथि", "श्रद्धांजलि", "नमन", "स्मरण"},
			Weak:   []string{"आयोजन", "समारोह", "उत्सव"},
		},
		{
			Label:  domain.CategoryFelicitation,
			Weight: 1.1,
			Strong: []string{"सम्मान", "पुरस्कार", "सम्मानित", "प्रशस्ति"},
			Medium: []string{"गौरव", "उपलब्धि"},
			Weak:   []string{"समारोह"},
		},
		{
			Label:  domain.CategoryPressMedia,
			Weight: 1.0,
			Strong: []string{"प्रेस कॉन्फ़्रेंस", "पत्रकार वार्ता", "मीडिया ब्रिफिंग"},
			Medium: []string{"मीडिया से बातचीत", "बाइट"},
			Weak:   []string{"पत्रकार", "मीडिया"},
		},
		{
			Label:  domain.CategoryGreeting,
			Weight: 0.8,
			Strong: []string{"बधाई", "शुभकामनाएं", "हार्दिक"},
			Medium: []string{"प्रसन्नता", "खुशी"},
			Weak:   []string{"मंगलमय"},
		},
		{
			Label:  domain.CategoryBirthday,
			Weight: 1.2,
			Strong: []string{"जन्मदिन", "अवतरण दिवस", "दीर्घायु"},
			Medium: []string{"स्वस्थ", "जीवन"},
			Weak:   []string{"कामना"},
		},
		{
			Label:  domain.CategoryCondolence,
			Weight: 1.3,
			Strong: []string{"निधन", "शोक", "दुखद", "श्रद्धांजलि", "ईश्वर"},
			Medium: []string{"आत्मा", "शांति", "संवेदना"},
			Weak:   []string{"परिवार"},
		},
		{
			Label:  domain.CategorySecurity,
			Weight: 1.5,
			Strong: []string{"नक्सल", "माओवादी", "शहीद", "मुठभेड़", "गिरफ्तार", "आत्मसमर्पण", "बरामद"},
			Medium: []string{"पुलिस", "जवान", "सुरक्षा", "बल", "आईईडी"},
			Weak:   []string{"सर्चिंग", "अभियान", "थाना"},
		},
		{
			Label:  domain.CategorySports,
			Weight: 1.4,
			Strong: []string{"पदक", "मेडल", "विजेता", "चैंपियन", "खेल", "खिलाड़ी", "जीत"},
			Medium: []string{"प्रतियोगिता", "टूर्नामेंट", "आयोजन"},
			Weak:   []string{"बधाई", "शुभकामनाएं"},
		},
		{
			Label:  domain.CategoryPolitical,
			Weight: 1.0,
			Strong: []string{"प्रेस वार्ता", "बयान", "संबोधन", "आरोप", "प्रत्यारोप", "कांग्रेस", "भाजपा"},
			Medium: []string{"सरकार", "विपक्ष", "घोटाला", "भ्रष्टाचार", "विकास"},
			Weak:   []string{"ट्वीट", "मीडिया", "पत्रकार"},
		},
		{
			Label:  domain.CategoryDisaster,
			Weight: 1.3,
			Strong: []string{"हादसा", "दुर्घटना", "मौत", "घायल", "आग", "बाढ़", "सूखा"},
			Medium: []string{"राहत", "बचाव", "मुआवजा"},
			Weak:   []string{"नुकसान", "क्षति"},
		},
	}
}
