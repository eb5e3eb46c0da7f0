package domain

// Rider is a delivery rider profile.
type Rider struct {
	ID            int64
	Name          string
	Phone         string
	Status        RiderStatus
	TransportType RiderTransportType
}

// PartialRiderUpdate carries optional fields to update a rider.
// A nil field means “do not change” that attribute.
type PartialRiderUpdate struct {
	ID            int64
	Name          *string
	Phone         *string
	Status        *RiderStatus
	TransportType *RiderTransportType
}
