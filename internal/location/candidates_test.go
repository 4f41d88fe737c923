package location_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janscope/annotator/internal/location"
)

func candidateNames(cands []location.Candidate) []string {
	names := make([]string, len(cands))
	for i, c := range cands {
		names[i] = c.Name
	}
	return names
}

func TestExtractCandidates_MarkerOrders(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		want       string
		wantMarker bool
	}{
		{name: "name before marker", text: "रायगढ़ जिला मुख्यालय में बैठक", want: "रायगढ़", wantMarker: true},
		{name: "marker before name", text: "ग्राम कुकुर्दा में शिविर", want: "कुकुर्दा", wantMarker: true},
		{name: "oblique district", text: "रायगढ़ जिले के विकास कार्य", want: "रायगढ़", wantMarker: true},
		{name: "assembly", text: "खरसिया विधानसभा क्षेत्र", want: "खरसिया", wantMarker: true},
		{name: "municipal corporation", text: "नगर निगम रायपुर की सफाई व्यवस्था", want: "रायपुर", wantMarker: true},
		{name: "locative only", text: "बिलासपुर में कार्यक्रम", want: "बिलासपुर", wantMarker: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cands := location.ExtractCandidates(tt.text)

			found := false
			for _, c := range cands {
				if c.Name == tt.want {
					found = true
					assert.Equal(t, tt.wantMarker, c.Marker, "marker flag for %q", c.Name)
					break
				}
			}
			assert.True(t, found, "candidate %q not extracted from %q: %v",
				tt.want, tt.text, candidateNames(cands))
		})
	}
}

func TestExtractCandidates_DropsStopwordsAndDuplicates(t *testing.T) {
	cands := location.ExtractCandidates("रायपुर में रायपुर की बैठक")

	seen := map[string]int{}
	for _, c := range cands {
		seen[c.Name]++
		assert.NotEqual(t, "में", c.Name)
		assert.NotEqual(t, "की", c.Name)
	}
	assert.Equal(t, 1, seen["रायपुर"])
}

func TestExtractCandidates_Empty(t *testing.T) {
	assert.Nil(t, location.ExtractCandidates(""))
	assert.Nil(t, location.ExtractCandidates("   "))
}

func TestWardAndZoneNumbers(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantWard int
		wantZone int
	}{
		{name: "hindi ward", text: "वार्ड क्रमांक 12 में सड़क निर्माण", wantWard: 12},
		{name: "english ward", text: "ward no. 7 inspection", wantWard: 7},
		{name: "devanagari digits", text: "वार्ड नं १५ की नाली", wantWard: 15},
		{name: "zone", text: "जोन 3 के अंतर्गत सफाई", wantZone: 3},
		{name: "ward and zone", text: "जोन 2 वार्ड 28 का दौरा", wantWard: 28, wantZone: 2},
		{name: "none", text: "नगर निगम की बैठक"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantWard, location.WardNumber(tt.text))
			assert.Equal(t, tt.wantZone, location.ZoneNumber(tt.text))
		})
	}
}

func TestContextVocabulary(t *testing.T) {
	assert.True(t, location.HasUrbanContext("वार्ड पार्षद के साथ नगर निगम की बैठक"))
	assert.False(t, location.HasUrbanContext("किसानों के साथ चर्चा"))

	assert.True(t, location.HasRuralContext("ग्राम पंचायत में सरपंच के साथ धान खरीदी"))
	assert.False(t, location.HasRuralContext("महापौर के साथ बैठक"))
}
