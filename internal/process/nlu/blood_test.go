package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

func TestExtractBloodType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "compact plus", text: "Need O+ blood", want: "O+"},
		{name: "compact minus", text: "AB- required at Apollo", want: "AB-"},
		{name: "compact ve suffix", text: "b +ve donor needed", want: "B+"},
		{name: "compact negative ve", text: "A -ve", want: "A-"},
		{name: "word form", text: "I need O positive blood urgently", want: "O+"},
		{name: "word form lowercase ab", text: "ab negative please", want: "AB-"},
		{name: "answer only", text: "AB negative", want: "AB-"},
		{name: "short rh words", text: "B neg", want: "B-"},
		{name: "need phrasing with lowercase group", text: "we need a positive donor", want: "A+"},
		{name: "hindi", text: "मुझे ओ पॉजिटिव खून की तुरंत जरूरत है", want: "O+"},
		{name: "hindi ab negative", text: "एबी नेगेटिव खून चाहिए", want: "AB-"},
		{name: "hindi latin group", text: "B नेगेटिव चाहिए", want: "B-"},
		{name: "telugu", text: "నాకు ఓ పాజిటివ్ రక్తం కావాలి", want: "O+"},
		{name: "telugu ab negative", text: "ఏబి నెగటివ్ రక్తం", want: "AB-"},
		{name: "telugu b", text: "బి పాజిటివ్", want: "B+"},
		{name: "lowercase a answer", text: "a positive", want: "A+"},
		{name: "lowercase a negative answer", text: "a negative", want: "A-"},
		{name: "lowercase a with punctuation", text: "a negative.", want: "A-"},
		{name: "lowercase a after group wording", text: "my blood group is a positive", want: "A+"},
		{name: "spaced plus", text: "O + needed", want: "O+"},
		{name: "no group", text: "I need blood", want: ""},
		{name: "spaced dash is punctuation", text: "garbage not collected near Block A - please clean", want: ""},
		{name: "spaced dash after sector", text: "Street light broken in Sector B - near park", want: ""},
		{name: "spaced dash in hindi", text: "ब्लॉक ए - पास", want: ""},
		{name: "need with article", text: "i need a positive attitude", want: ""},
		{name: "article is not a group", text: "I had a positive experience", want: ""},
		{name: "hyphenated words", text: "the co-op and B-Block", want: ""},
		{name: "hindi vowel inside word", text: "मेरे लिए नेगेटिव रिपोर्ट", want: ""},
		{name: "empty", text: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractBloodType(tt.text))
		})
	}
}

func TestExtractBloodInfo(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.SlotMap
	}{
		{
			name: "urgent english",
			text: "I need O positive blood urgently",
			want: domain.SlotMap{
				domain.SlotBloodType:    "O+",
				domain.SlotUrgencyLevel: domain.UrgencyUrgent,
				domain.SlotRequiredDate: domain.RequiredNow,
			},
		},
		{
			name: "full details",
			text: "Need 2 units of B- blood at Apollo Hospital for my mother tomorrow",
			want: domain.SlotMap{
				domain.SlotBloodType:    "B-",
				domain.SlotUnitsNeeded:  "2",
				domain.SlotHospitalName: "Apollo Hospital",
				domain.SlotRelationship: "Mother",
				domain.SlotLocation:     "Apollo Hospital",
				domain.SlotRequiredDate: domain.RequiredTomorrow,
			},
		},
		{
			name: "patient name and explicit date",
			text: "A+ blood for patient Ravi Kumar on 05/03/2026",
			want: domain.SlotMap{
				domain.SlotBloodType:    "A+",
				domain.SlotPatientName:  "Ravi Kumar",
				domain.SlotRequiredDate: "2026-03-05",
			},
		},
		{
			name: "negated urgency",
			text: "O- blood, not urgent",
			want: domain.SlotMap{
				domain.SlotBloodType: "O-",
			},
		},
		{
			name: "hindi urgency and units",
			text: "मुझे २ यूनिट खून तुरंत चाहिए",
			want: domain.SlotMap{
				domain.SlotUnitsNeeded:  "2",
				domain.SlotUrgencyLevel: domain.UrgencyUrgent,
				domain.SlotRequiredDate: domain.RequiredNow,
			},
		},
		{
			name: "telugu relation",
			text: "మా అమ్మ కోసం రక్తం కావాలి",
			want: domain.SlotMap{
				domain.SlotRelationship: "Mother",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractRequestInfo(tt.text, domain.CategoryBloodRequest, nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExplicitUrgency(t *testing.T) {
	assert.True(t, ExplicitUrgency("need blood urgently"))
	assert.True(t, ExplicitUrgency("खून तुरंत चाहिए"))
	assert.True(t, ExplicitUrgency("రక్తం వెంటనే కావాలి"))
	assert.False(t, ExplicitUrgency("not urgent, next week is fine"))
	assert.False(t, ExplicitUrgency("need blood"))
}

func TestExtractRequestInfoReturnsOnlyNewSlots(t *testing.T) {
	prior := domain.SlotMap{domain.SlotBloodType: "AB-", domain.SlotUnitsNeeded: "1"}

	got := ExtractRequestInfo("AB negative, 3 units", domain.CategoryBloodRequest, prior)

	require.NotContains(t, got, domain.SlotBloodType)
	assert.Equal(t, "3", got[domain.SlotUnitsNeeded])
}

func TestExtractRequestInfoNonServiceCategory(t *testing.T) {
	assert.Empty(t, ExtractRequestInfo("hello there", domain.CategoryGeneralInquiry, nil))
	assert.Empty(t, ExtractRequestInfo("ambulance now", domain.CategoryEmergency, nil))
}
