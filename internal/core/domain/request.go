package domain

import "time"

// RequestType tags the service request union.
type RequestType string

// Request types.
const (
	RequestTypeBlood        RequestType = "blood"
	RequestTypeElderSupport RequestType = "elder_support"
	RequestTypeComplaint    RequestType = "complaint"
)

// RequestTypeFor maps a service category onto its request type.
func RequestTypeFor(c Category) (RequestType, bool) {
	switch c {
	case CategoryBloodRequest:
		return RequestTypeBlood, true
	case CategoryElderSupport:
		return RequestTypeElderSupport, true
	case CategoryComplaint:
		return RequestTypeComplaint, true
	default:
		return "", false
	}
}

// RequestStatusPending is the status of every newly created request.
const RequestStatusPending = "pending"

// User is the requester profile held by the user directory.
type User struct {
	ID       string
	Name     string
	Phone    string
	Email    string
	Address  string
	Lat      float64
	Lng      float64
	Language Language
}

// Location is a postal address with coordinates.
type Location struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// ServiceRequest is the persisted artifact of a finalized turn. Exactly one
// of the detail pointers is set, matching Type.
type ServiceRequest struct {
	ID            string
	ReferenceCode string
	Type          RequestType
	RequesterID   string
	RequesterName string
	Phone         string
	Title         string
	Description   string
	Location      Location
	Priority      Priority
	Status        string
	Language      Language
	InputMethod   InputMethod
	TurnID        string
	CreatedAt     time.Time

	Blood     *BloodDetails        `json:",omitempty"`
	Elder     *ElderSupportDetails `json:",omitempty"`
	Complaint *ComplaintDetails    `json:",omitempty"`
}

// BloodDetails are the blood-request specific fields.
type BloodDetails struct {
	BloodType        string    `json:"bloodType"`
	UnitsNeeded      int       `json:"unitsNeeded"`
	HospitalName     string    `json:"hospitalName,omitempty"`
	PatientName      string    `json:"patientName,omitempty"`
	Relationship     string    `json:"relationship"`
	UrgencyLevel     string    `json:"urgencyLevel"`
	RequiredDate     time.Time `json:"requiredDate"`
	MedicalCondition string    `json:"medicalCondition,omitempty"`
}

// ElderSupportDetails are the elder-support specific fields.
type ElderSupportDetails struct {
	ServiceType string `json:"serviceType"`
	SupportType string `json:"supportType"`
	ElderName   string `json:"elderName,omitempty"`
	Age         int    `json:"age,omitempty"`
	Frequency   string `json:"frequency"`
	TimeSlot    string `json:"timeSlot"`
}

// ComplaintDetails are the complaint specific fields.
type ComplaintDetails struct {
	Category string `json:"complaintCategory"`
	Location string `json:"complaintLocation,omitempty"`
	Severity string `json:"severity"`
}
