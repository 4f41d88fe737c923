package taxonomy

// SchemePattern maps a regex over post text to a welfare scheme's
// canonical name. Patterns are matched case-insensitively by the entity
// extractor.
type SchemePattern struct {
	Pattern   string
	Canonical string
}

// SchemePatterns returns the recognized central and state scheme
// spellings. Hindi abbreviations and Latin acronyms both map onto the
// full canonical name.
func SchemePatterns() []SchemePattern {
	return []SchemePattern{
		{Pattern: `पीएम\s*आवास`, Canonical: "प्रधानमंत्री आवास योजना"},
		{Pattern: `PMAY`, Canonical: "प्रधानमंत्री आवास योजना"},
		{Pattern: `महतारी\s*वंदन`, Canonical: "महतारी वंदन योजना"},
		{Pattern: `किसान\s*न्याय`, Canonical: "राजीव गांधी किसान न्याय योजना"},
		{Pattern: `गोधन\s*न्याय`, Canonical: "गोधन न्याय योजना"},
		{Pattern: `मनरेगा`, Canonical: "मनरेगा"},
		{Pattern: `MNREGA`, Canonical: "मनरेगा"},
		{Pattern: `आयुष्मान`, Canonical: "आयुष्मान भारत"},
		{Pattern: `उज्ज्वला`, Canonical: "प्रधानमंत्री उज्ज्वला योजना"},
		{Pattern: `जन\s*धन`, Canonical: "प्रधानमंत्री जन धन योजना"},
		{Pattern: `स्वच्छ\s*भारत`, Canonical: "स्वच्छ भारत मिशन"},
		{Pattern: `जल\s*जीवन`, Canonical: "जल जीवन मिशन"},
		{Pattern: `GST`, Canonical: "GST"},
	}
}

// TargetGroups maps a canonical beneficiary group to the surface forms
// posts use for it.
func TargetGroups() map[string][]string {
	return map[string][]string{
		"महिला":           {"महिला", "महिलाओं", "नारी"},
		"युवा":            {"युवा", "युवाओं"},
		"किसान":           {"किसान", "किसानों", "खेती"},
		"छात्र":           {"छात्र", "विद्यार्थी", "स्टूडेंट"},
		"मज़दूर":          {"मजदूर", "मजदूरों"},
		"व्यापारी":        {"व्यापारी", "व्यापारियों"},
		"गरीब":            {"गरीब", "आर्थिक रूप से कमजोर"},
		"बुज़ुर्ग":        {"बुजुर्ग", "वरिष्ठ नागरिक"},
		"सरकारी कर्मचारी": {"सरकारी कर्मचारी", "शासकीय कर्मचारी"},
	}
}

// Communities maps a canonical caste or religious community name to its
// surface forms.
func Communities() map[string][]string {
	return map[string][]string{
		"साहू":             {"साहू"},
		"गोंड":             {"गोंड", "गोंडवाना"},
		"आदिवासी":          {"आदिवासी"},
		"वैश्य":            {"वैश्य"},
		"ब्राह्मण":         {"ब्राह्मण"},
		"कुर्मी":           {"कुर्मी"},
		"तेली":             {"तेली"},
		"ठाकुर":            {"ठाकुर"},
		"कुशवाहा":          {"कुशवाहा"},
		"दलित":             {"दलित"},
		"अनुसूचित जाति":    {"अनुसूचित जाति"},
		"अनुसूचित जनजाति":  {"अनुसूचित जनजाति"},
		"ओबीसी":            {"ओबीसी"},
		"मुस्लिम":          {"मुस्लिम", "इस्लाम"},
		"ईसाई":             {"ईसाई", "क्रिश्चियन"},
		"सिख":              {"सिख"},
		"जैन":              {"जैन"},
		"बौद्ध":            {"बौद्ध"},
	}
}

// Organizations maps a canonical organization name to its surface forms,
// including Latin acronyms.
func Organizations() map[string][]string {
	return map[string][]string{
		"भारतीय जनता पार्टी":       {"भाजपा", "BJP", "भारतीय जनता पार्टी"},
		"भारतीय राष्ट्रीय कांग्रेस": {"कांग्रेस", "INC", "Indian National Congress"},
		"राष्ट्रीय स्वयंसेवक संघ":   {"RSS", "आरएसएस"},
		"केंद्र सरकार":             {"केंद्र सरकार"},
		"राज्य सरकार":              {"राज्य सरकार"},
		"भारतीय सेना":              {"भारतीय सेना", "Indian Army"},
	}
}

// WordBuckets maps a thematic bucket name to the vocabulary that marks
// it. Buckets feed downstream aggregation, not classification.
func WordBuckets() map[string][]string {
	return map[string][]string{
		"agriculture":    {"किसान", "कृषि", "धान", "फसल", "बीज", "खाद", "सिंचाई", "बोनस", "समर्थन मूल्य", "MSP"},
		"education":      {"शिक्षा", "स्कूल", "कॉलेज", "विद्यार्थी", "छात्र", "शिक्षक", "भर्ती", "परीक्षा", "परिणाम"},
		"health":         {"स्वास्थ्य", "अस्पताल", "इलाज", "डॉक्टर", "दवा", "मेडिकल", "एम्बुलेंस", "टीकाकरण"},
		"infrastructure": {"सड़क", "बिजली", "पानी", "निर्माण", "पुल", "भवन", "रेलवे", "कनेक्टिविटी"},
		"welfare":        {"राशन", "पेंशन", "आवास", "गरीब", "कल्याण", "सहायता", "अनुदान"},
		"governance":     {"प्रशासन", "योजना", "बैठक", "समीक्षा", "निरीक्षण", "उद्घाटन", "लोकार्पण"},
		"security":       {"पुलिस", "नक्सल", "सुरक्षा", "कानून", "अपराध", "गिरफ्तार", "जवान"},
		"culture":        {"संस्कृति", "त्योहार", "परंपरा", "मेला", "महोत्सव", "कला", "पर्यटन"},
		"employment":     {"रोजगार", "नौकरी", "भर्ती", "स्वरोजगार", "कौशल", "प्रशिक्षण"},
		"development":    {"विकास", "प्रगति", "सौगात", "आधारशिला", "विकसित"},
	}
}

// NotablePeople returns public figures recognized by exact match, so
// posts naming them without an honorific still yield the person.
func NotablePeople() []string {
	return []string{
		"विष्णु देव साय",
		"भूपेश बघेल",
		"रमेन डेका",
		"तोखन साहू",
		"बृजमोहन अग्रवाल",
		"नरेंद्र मोदी",
		"रमन सिंह",
	}
}

// PersonTitleStopwords returns designations that follow an honorific in
// place of a name. The extractor drops these captures.
func PersonTitleStopwords() []string {
	return []string{"मुख्यमंत्री", "प्रधानमंत्री", "अध्यक्ष", "CM", "PM"}
}
