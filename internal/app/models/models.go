package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent     RoleType = "STUDENT"
	RoleSupervisor  RoleType = "SUPERVISOR"
	RoleCoordinator RoleType = "COORDINATOR"
)

// RequestStatus is shared by group invites and supervisor requests.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
	// StatusApproved is used by supervisor change requests, which are
	// resolved by a coordinator rather than accepted by a peer.
	StatusApproved RequestStatus = "approved"
)

// OTPPurpose identifies the flow an OTP was issued for.
type OTPPurpose string

const (
	OTPPurposeRegistration  OTPPurpose = "registration"
	OTPPurposePasswordReset OTPPurpose = "password_reset"
)

// NotificationTarget selects the audience of a broadcast notification.
type NotificationTarget string

const (
	TargetAll            NotificationTarget = "all"
	TargetStudents       NotificationTarget = "students"
	TargetSupervisors    NotificationTarget = "supervisors"
	TargetSpecificBranch NotificationTarget = "specific_branch"
)

// Hard limits of the group formation and assignment protocols.
const (
	MaxGroupSize            = 4
	MaxSupervisedGroups     = 3
	MaxSupervisorRequests   = 5
	MaxCoordinatorsPerSchool = 6
)
