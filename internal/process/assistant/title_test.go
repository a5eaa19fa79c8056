package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	"github.com/lueurxax/seva-desk/internal/process/nlu"
)

func TestBuildTitleAndDescription(t *testing.T) {
	tests := []struct {
		name     string
		category domain.Category
		slots    domain.SlotMap
		text     string
		want     string
	}{
		{
			name:     "blood without location",
			category: domain.CategoryBloodRequest,
			slots:    domain.SlotMap{domain.SlotBloodType: "O+"},
			text:     "I need O positive blood urgently",
			want:     "Need O+ blood",
		},
		{
			name:     "blood with location",
			category: domain.CategoryBloodRequest,
			slots:    domain.SlotMap{domain.SlotBloodType: "B-"},
			text:     "need B- blood in Secunderabad",
			want:     "Need B- blood - Secunderabad",
		},
		{
			name:     "street light override",
			category: domain.CategoryComplaint,
			slots:    domain.SlotMap{domain.SlotComplaintCategory: nlu.ComplaintElectricity},
			text:     "street lights not working near MG Road",
			want:     "Street lights not working - MG Road",
		},
		{
			name:     "pothole override",
			category: domain.CategoryComplaint,
			slots:    domain.SlotMap{domain.SlotComplaintCategory: nlu.ComplaintRoadMaintenance},
			text:     "big pothole on Jubilee Hills Road",
			want:     "Pothole on road - Jubilee Hills Road",
		},
		{
			name:     "power cut override",
			category: domain.CategoryComplaint,
			slots:    domain.SlotMap{domain.SlotComplaintCategory: nlu.ComplaintElectricity},
			text:     "power cut since morning",
			want:     "Power cut in the area",
		},
		{
			name:     "water leak override",
			category: domain.CategoryComplaint,
			slots:    domain.SlotMap{domain.SlotComplaintCategory: nlu.ComplaintWaterSupply},
			text:     "water leakage at Gachibowli",
			want:     "Water leakage - Gachibowli",
		},
		{
			name:     "complaint category phrase",
			category: domain.CategoryComplaint,
			slots:    domain.SlotMap{domain.SlotComplaintCategory: nlu.ComplaintPublicSafety},
			text:     "stray dogs chasing children",
			want:     "Public safety concern",
		},
		{
			name:     "complaint falls back to slot location",
			category: domain.CategoryComplaint,
			slots: domain.SlotMap{
				domain.SlotComplaintCategory: nlu.ComplaintWaterSupply,
				domain.SlotComplaintLocation: "Ward 12",
			},
			text: "no water since two days",
			want: "No water supply - Ward 12",
		},
		{
			name:     "elder grocery bucket",
			category: domain.CategoryElderSupport,
			slots:    domain.SlotMap{domain.SlotServiceType: nlu.ServiceGroceryShopping.Name},
			text:     "need someone to buy groceries for my grandfather",
			want:     "Grocery shopping for elderly",
		},
		{
			name:     "elder service slot",
			category: domain.CategoryElderSupport,
			slots:    domain.SlotMap{domain.SlotServiceType: nlu.ServiceCompanionship.Name},
			text:     "my grandmother feels lonely",
			want:     "Companionship for elderly",
		},
		{
			name:     "elder generic",
			category: domain.CategoryElderSupport,
			slots:    domain.SlotMap{},
			text:     "help for my grandmother",
			want:     elderGenericTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, description := BuildTitleAndDescription(tt.category, tt.slots, tt.text)
			assert.Equal(t, tt.want, title)
			assert.Contains(t, description, tt.text)
		})
	}
}

func TestTruncateKeepsRunes(t *testing.T) {
	assert.Equal(t, "रक्", truncate("रक्त", 3))
	assert.Equal(t, "abc", truncate("abc", 10))
}
