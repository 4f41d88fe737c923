package gazetteer

import "github.com/janscope/annotator/internal/domain"

// Curated Chhattisgarh reference data. District and urban-body entries are
// the canonical set the review tooling expects; the village list covers the
// tehsil towns that appear in field-visit posts with their common Latin
// transliterations. Snapshot files and the SQL store extend this seed at
// startup.

var seedDistricts = []domain.GazetteerRecord{
	{Canonical: "रायगढ़", Aliases: []string{"Raigarh", "Raigarhh"}, AdminType: domain.AdminDistrict},
	{Canonical: "रायपुर", Aliases: []string{"Raipur"}, AdminType: domain.AdminDistrict},
	{Canonical: "बिलासपुर", Aliases: []string{"Bilaspur"}, AdminType: domain.AdminDistrict},
	{Canonical: "कोरबा", Aliases: []string{"Korba"}, AdminType: domain.AdminDistrict},
	{Canonical: "दुर्ग", Aliases: []string{"Durg"}, AdminType: domain.AdminDistrict},
	{Canonical: "सुरजपुर", Aliases: []string{"Surajpur"}, AdminType: domain.AdminDistrict},
	{Canonical: "बस्तर", Aliases: []string{"Bastar"}, AdminType: domain.AdminDistrict},
	{Canonical: "कोंडागाँव", Aliases: []string{"Kondagaon"}, AdminType: domain.AdminDistrict},
	{Canonical: "नारायणपुर", Aliases: []string{"Narayanpur"}, AdminType: domain.AdminDistrict},
	{Canonical: "राजनांदगाँव", Aliases: []string{"Rajnandgaon", "Rajandgaon"}, AdminType: domain.AdminDistrict},
	{Canonical: "महासमुंद", Aliases: []string{"Mahasamund"}, AdminType: domain.AdminDistrict},
	{Canonical: "धमतरी", Aliases: []string{"Dhamtari"}, AdminType: domain.AdminDistrict},
	{Canonical: "बालोद", Aliases: []string{"Balod"}, AdminType: domain.AdminDistrict},
	{Canonical: "गरियाबंद", Aliases: []string{"Gariaband"}, AdminType: domain.AdminDistrict},
	{Canonical: "बीजापुर", Aliases: []string{"Bijapur"}, AdminType: domain.AdminDistrict},
	{Canonical: "दंतेवाड़ा", Aliases: []string{"Dantewada"}, AdminType: domain.AdminDistrict},
	{Canonical: "सुकमा", Aliases: []string{"Sukma"}, AdminType: domain.AdminDistrict},
	{Canonical: "जांजगीर-चंपा", Aliases: []string{"Janjgir-Champa", "जांजगीर", "Janjgir"}, AdminType: domain.AdminDistrict},
	{Canonical: "सरगुजा", Aliases: []string{"Surguja", "Sarguja"}, AdminType: domain.AdminDistrict},
	{Canonical: "कांकेर", Aliases: []string{"Kanker"}, AdminType: domain.AdminDistrict},
	{Canonical: "जशपुर", Aliases: []string{"Jashpur"}, AdminType: domain.AdminDistrict},
}

var seedUrbanBodies = []domain.GazetteerRecord{
	{Canonical: "नया रायपुर", Aliases: []string{"New Raipur", "Naya Raipur"}, AdminType: domain.AdminULB, District: "रायपुर"},
	{Canonical: "भिलाई", Aliases: []string{"Bhilai"}, AdminType: domain.AdminULB, District: "दुर्ग"},
	{Canonical: "रतनपुर", Aliases: []string{"Ratanpur"}, AdminType: domain.AdminULB, District: "बिलासपुर"},
	{Canonical: "अंबिकापुर", Aliases: []string{"Ambikapur"}, AdminType: domain.AdminULB, District: "सरगुजा"},
	{Canonical: "चंपा", Aliases: []string{"Champa"}, AdminType: domain.AdminULB, District: "जांजगीर-चंपा"},
	{Canonical: "जगदलपुर", Aliases: []string{"Jagdalpur"}, AdminType: domain.AdminULB, District: "बस्तर"},
	{Canonical: "खरसिया", Aliases: []string{"Kharsia", "Kharsiya"}, AdminType: domain.AdminULB, District: "रायगढ़", Assembly: "खरसिया"},
}

// seedVillages carries the tehsil and village names with curated
// transliteration aliases. District containment is filled in where the
// reference registries agree; absent values are tolerated downstream.
var seedVillages = []domain.GazetteerRecord{
	{Canonical: "सिलोतरा", Aliases: []string{"Siltara"}, AdminType: domain.AdminVillage, District: "रायपुर"},
	{Canonical: "कुकुर्दा", Aliases: []string{"Kukurda"}, AdminType: domain.AdminVillage, District: "रायगढ़"},
	{Canonical: "लैलूंगा", Aliases: []string{"Lailunga"}, AdminType: domain.AdminVillage, District: "रायगढ़"},
	{Canonical: "तमनार", Aliases: []string{"Tamnar"}, AdminType: domain.AdminVillage, District: "रायगढ़"},
	{Canonical: "पत्थलगांव", Aliases: []string{"Pathalgaon"}, AdminType: domain.AdminVillage, District: "जशपुर"},
	{Canonical: "धरमजयगढ़", Aliases: []string{"Dharamjaigarh"}, AdminType: domain.AdminVillage, District: "रायगढ़"},
	{Canonical: "कोंटा", Aliases: []string{"Konta"}, AdminType: domain.AdminVillage, District: "सुकमा"},
	{Canonical: "गीदम", Aliases: []string{"Geedam"}, AdminType: domain.AdminVillage, District: "दंतेवाड़ा"},
	{Canonical: "बसना", Aliases: []string{"Basna"}, AdminType: domain.AdminVillage, District: "महासमुंद"},
	{Canonical: "मनेंद्रगढ़", Aliases: []string{"Manendragarh"}, AdminType: domain.AdminVillage},
	{Canonical: "भानुप्रतापपुर", Aliases: []string{"Bhanupratappur"}, AdminType: domain.AdminVillage, District: "कांकेर"},
	{Canonical: "डोंगरगढ़", Aliases: []string{"Dongargarh"}, AdminType: domain.AdminVillage, District: "राजनांदगाँव"},
	{Canonical: "खैरागढ़", Aliases: []string{"Khairagarh"}, AdminType: domain.AdminVillage, District: "राजनांदगाँव"},
	{Canonical: "पेंड्रा", Aliases: []string{"Pendra"}, AdminType: domain.AdminVillage},
	{Canonical: "मरवाही", Aliases: []string{"Marwahi"}, AdminType: domain.AdminVillage},
	{Canonical: "सारंगढ़", Aliases: []string{"Sarangarh"}, AdminType: domain.AdminVillage, District: "रायगढ़"},
	{Canonical: "बिलाईगढ़", Aliases: []string{"Bilaigarh"}, AdminType: domain.AdminVillage},
	{Canonical: "शक्ति", Aliases: []string{"Sakti"}, AdminType: domain.AdminVillage, District: "जांजगीर-चंपा"},
	{Canonical: "मोहला", Aliases: []string{"Mohla"}, AdminType: domain.AdminVillage, District: "राजनांदगाँव"},
	{Canonical: "मानपुर", Aliases: []string{"Manpur"}, AdminType: domain.AdminVillage, District: "राजनांदगाँव"},
}

// seedRecords returns the embedded reference set with hierarchy paths
// attached.
func seedRecords() []domain.GazetteerRecord {
	out := make([]domain.GazetteerRecord, 0,
		len(seedDistricts)+len(seedUrbanBodies)+len(seedVillages))

	for _, rec := range seedDistricts {
		rec.Hierarchy = BuildHierarchy(&rec)
		out = append(out, rec)
	}
	for _, rec := range seedUrbanBodies {
		rec.Hierarchy = BuildHierarchy(&rec)
		out = append(out, rec)
	}
	for _, rec := range seedVillages {
		rec.Hierarchy = BuildHierarchy(&rec)
		out = append(out, rec)
	}
	return out
}

// StateName is the root of every hierarchy path in the reference set.
const StateName = "छत्तीसगढ़"

// BuildHierarchy constructs the ordered ancestor path for a record, from
// the state root down to the record itself. Missing intermediate levels
// are skipped rather than padded.
func BuildHierarchy(rec *domain.GazetteerRecord) []string {
	path := []string{StateName}

	if rec.AdminType == domain.AdminDistrict {
		return append(path, rec.Canonical+" जिला")
	}
	if rec.District != "" {
		path = append(path, rec.District+" जिला")
	}
	if rec.Assembly != "" {
		path = append(path, rec.Assembly+" विधानसभा")
	}
	if rec.Block != "" {
		path = append(path, rec.Block+" विकासखंड")
	}
	if rec.GramPanchayat != "" {
		path = append(path, rec.GramPanchayat+" पंचायत")
	}
	return append(path, rec.Canonical)
}
