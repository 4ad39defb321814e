package enrollment

import "context"

// Store defines the persistence operations the enrollment service needs.
type Store interface {
	GetUser(ctx context.Context, userID int64) (*Player, error)
	GetTournament(ctx context.Context, tournamentID int64) (*Tournament, error)
	IsEnrolled(ctx context.Context, userID, tournamentID int64) (bool, error)
	InsertEnrollment(ctx context.Context, e *Enrollment) error
	CountEnrolled(ctx context.Context, tournamentID int64) (int, error)
	ListEnrolled(ctx context.Context, tournamentID int64) ([]EnrolledPlayer, error)
	GetEnrollmentInfo(ctx context.Context, tournamentID int64, battlenetID string) (*EnrolledPlayer, error)
	ListTeamNames(ctx context.Context, tournamentID int64) ([]TeamName, error)
	SwapTeams(ctx context.Context, tournamentID int64, battlenetID1, battlenetID2 string) error
}
