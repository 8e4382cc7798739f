package domain

// Quarter identifies the reporting quarter a record was registered in.
type Quarter string

const (
	QuarterQ1 Quarter = "Q1"
	QuarterQ2 Quarter = "Q2"
	QuarterQ3 Quarter = "Q3"
	QuarterQ4 Quarter = "Q4"
)

func (q Quarter) String() string { return string(q) }

// Quarters lists the four reporting quarters in calendar order.
func Quarters() []Quarter {
	return []Quarter{QuarterQ1, QuarterQ2, QuarterQ3, QuarterQ4}
}

func (q Quarter) IsValid() bool {
	switch q {
	case QuarterQ1, QuarterQ2, QuarterQ3, QuarterQ4:
		return true
	}
	return false
}

// BeneficiaryStatus represents the lifecycle state of a PWD record.
type BeneficiaryStatus string

const (
	BeneficiaryStatusPending  BeneficiaryStatus = "pending"
	BeneficiaryStatusApproved BeneficiaryStatus = "approved"
	BeneficiaryStatusDeclined BeneficiaryStatus = "declined"
)

func (s BeneficiaryStatus) String() string { return string(s) }

func (s BeneficiaryStatus) IsValid() bool {
	switch s {
	case BeneficiaryStatusPending, BeneficiaryStatusApproved, BeneficiaryStatusDeclined:
		return true
	}
	return false
}

// RequestStatus represents the lifecycle state of an assistance request.
type RequestStatus string

const (
	RequestStatusPending       RequestStatus = "pending"
	RequestStatusReview        RequestStatus = "review"
	RequestStatusReadyToAccess RequestStatus = "ready_to_access"
	RequestStatusAssessed      RequestStatus = "assessed"
	RequestStatusDeclined      RequestStatus = "declined"
)

func (s RequestStatus) String() string { return string(s) }

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusReview, RequestStatusReadyToAccess,
		RequestStatusAssessed, RequestStatusDeclined:
		return true
	}
	return false
}

// IsAccepted reports whether the request counts as assisted for statistics.
func (s RequestStatus) IsAccepted() bool {
	return s == RequestStatusReadyToAccess || s == RequestStatusAssessed
}

// AssistanceStatus represents the lifecycle state of a legacy assistance
// distribution record. It is a distinct vocabulary from RequestStatus and
// the two are intentionally not merged.
type AssistanceStatus string

const (
	AssistanceStatusPending     AssistanceStatus = "pending"
	AssistanceStatusApproved    AssistanceStatus = "approved"
	AssistanceStatusDisapproved AssistanceStatus = "disapproved"
)

func (s AssistanceStatus) String() string { return string(s) }

func (s AssistanceStatus) IsValid() bool {
	switch s {
	case AssistanceStatusPending, AssistanceStatusApproved, AssistanceStatusDisapproved:
		return true
	}
	return false
}

// OwnerKind discriminates which entity a supporting document belongs to.
// The literals are persisted as-is in the related_type column.
type OwnerKind string

const (
	OwnerKindPWD        OwnerKind = "pwd"
	OwnerKindAssistance OwnerKind = "assistance"
)

func (k OwnerKind) String() string { return string(k) }

func (k OwnerKind) IsValid() bool {
	switch k {
	case OwnerKindPWD, OwnerKindAssistance:
		return true
	}
	return false
}
