package assistant

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	coreerrors "github.com/lueurxax/seva-desk/internal/core/errors"
)

func TestAssembleRejectsBloodWithoutType(t *testing.T) {
	a := NewAssembler(testLocation, func() time.Time { return testNow })

	tests := []struct {
		name  string
		slots domain.SlotMap
	}{
		{name: "missing", slots: domain.SlotMap{domain.SlotUnitsNeeded: "2"}},
		{name: "blank", slots: domain.SlotMap{domain.SlotBloodType: "  "}},
		{name: "malformed", slots: domain.SlotMap{domain.SlotBloodType: "O positive"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := a.Assemble(AssembleInput{Category: domain.CategoryBloodRequest, Slots: tt.slots})
			assert.ErrorIs(t, err, coreerrors.ErrValidation)
			assert.Nil(t, req)
		})
	}
}

func TestAssembleRejectsNonServiceCategory(t *testing.T) {
	a := NewAssembler(testLocation, nil)

	_, err := a.Assemble(AssembleInput{Category: domain.CategoryGeneralInquiry})
	assert.ErrorIs(t, err, coreerrors.ErrValidation)
}

func TestAssembleBloodDefaults(t *testing.T) {
	a := NewAssembler(testLocation, func() time.Time { return testNow })

	req, err := a.Assemble(AssembleInput{
		Category: domain.CategoryBloodRequest,
		Priority: domain.PriorityLow,
		Slots: domain.SlotMap{
			domain.SlotBloodType:    "AB-",
			domain.SlotRequiredDate: domain.RequiredTomorrow,
			domain.SlotPatientName:  "lakshmi devi",
		},
		Text:   "need AB- blood tomorrow",
		TurnID: "turn-1",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RequestTypeBlood, req.Type)
	assert.Equal(t, domain.PriorityMedium, req.Priority)
	assert.Equal(t, domain.RequestStatusPending, req.Status)
	assert.Equal(t, anonymousRequester, req.RequesterID)
	assert.Equal(t, testLocation, req.Location)
	assert.Equal(t, "turn-1", req.TurnID)
	assert.Equal(t, testNow, req.CreatedAt)
	assert.True(t, strings.HasPrefix(req.ReferenceCode, "BR-"))
	assert.Len(t, req.ReferenceCode, len("BR-")+26)

	require.NotNil(t, req.Blood)
	assert.Nil(t, req.Elder)
	assert.Nil(t, req.Complaint)
	assert.Equal(t, defaultUnits, req.Blood.UnitsNeeded)
	assert.Equal(t, defaultRelationship, req.Blood.Relationship)
	assert.Equal(t, defaultUrgency, req.Blood.UrgencyLevel)
	assert.Equal(t, "Lakshmi Devi", req.Blood.PatientName)
	assert.Equal(t, testNow.AddDate(0, 0, 1), req.Blood.RequiredDate)
}

func TestAssembleLocationPrecedence(t *testing.T) {
	a := NewAssembler(testLocation, nil)
	user := &domain.User{ID: "u-9", Name: "Sita", Phone: "+91999", Address: "Kukatpally", Lat: 17.49, Lng: 78.39}

	tests := []struct {
		name  string
		slots domain.SlotMap
		user  *domain.User
		want  string
	}{
		{name: "default", slots: domain.SlotMap{}, want: testLocation.Address},
		{name: "profile", slots: domain.SlotMap{}, user: user, want: "Kukatpally"},
		{name: "extracted", slots: domain.SlotMap{domain.SlotComplaintLocation: "Tank Bund"}, user: user, want: "Tank Bund"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := tt.slots.Merge(domain.SlotMap{domain.SlotComplaintCategory: "Water Supply"})

			req, err := a.Assemble(AssembleInput{Category: domain.CategoryComplaint, Slots: slots, User: tt.user})
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Location.Address)
		})
	}
}

func TestAssembleElderDerivesServiceFromSupportType(t *testing.T) {
	a := NewAssembler(testLocation, nil)

	req, err := a.Assemble(AssembleInput{
		Category: domain.CategoryElderSupport,
		Slots:    domain.SlotMap{domain.SlotSupportType: "companionship", domain.SlotAge: "81"},
	})
	require.NoError(t, err)

	require.NotNil(t, req.Elder)
	assert.Equal(t, "Companionship", req.Elder.ServiceType)
	assert.Equal(t, 81, req.Elder.Age)
	assert.Equal(t, defaultFrequency, req.Elder.Frequency)
	assert.Equal(t, defaultTimeSlot, req.Elder.TimeSlot)
}

func TestAssembleUnknownComplaintCategoryBecomesOther(t *testing.T) {
	a := NewAssembler(testLocation, nil)

	req, err := a.Assemble(AssembleInput{
		Category: domain.CategoryComplaint,
		Slots:    domain.SlotMap{domain.SlotComplaintCategory: "Noise"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintOther, req.Complaint.Category)
}

func TestResolveRequiredDate(t *testing.T) {
	tests := []struct {
		value string
		want  time.Time
	}{
		{value: "", want: testNow},
		{value: domain.RequiredNow, want: testNow},
		{value: domain.RequiredToday, want: testNow},
		{value: domain.RequiredTomorrow, want: testNow.AddDate(0, 0, 1)},
		{value: "2026-04-02", want: time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)},
		{value: "next week", want: testNow},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveRequiredDate(tt.value, testNow))
		})
	}
}

func TestReferenceCodesAreUnique(t *testing.T) {
	a := NewAssembler(testLocation, func() time.Time { return testNow })
	seen := make(map[string]bool)

	for range 50 {
		code := a.referenceCode(domain.RequestTypeComplaint, testNow)
		assert.False(t, seen[code], code)
		seen[code] = true
	}
}
