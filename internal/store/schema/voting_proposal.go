package schema

import "time"

// ProposalStatus represents the lifecycle state of a ratio change proposal
type ProposalStatus string

const (
	// ProposalStatusOpen means the proposal is accepting votes
	ProposalStatusOpen ProposalStatus = "open"
	// ProposalStatusApplied means the proposal reached quorum and the ratio was changed
	ProposalStatusApplied ProposalStatus = "applied"
	// ProposalStatusExpired means the proposal expired before reaching quorum
	ProposalStatusExpired ProposalStatus = "expired"
)

// VotingProposal represents the voting_proposals table - a token-weighted
// proposal to change the exchange ratio of a resource
type VotingProposal struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Resource is the resource kind whose ratio the proposal targets
	Resource string `gorm:"column:resource;not null;type:text;index:idx_voting_proposals_resource_status,priority:1"`
	// ProposedRatio is the ratio that applies if the proposal passes
	ProposedRatio float64 `gorm:"column:proposed_ratio;not null"`
	// Status is the lifecycle state of the proposal
	Status ProposalStatus `gorm:"column:status;not null;type:text;index:idx_voting_proposals_resource_status,priority:2"`
	// TotalWeight is the accumulated vote weight in base token units
	TotalWeight int64 `gorm:"column:total_weight;not null;default:0"`
	// ExpiresAt is the time after which the proposal no longer accepts votes
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	// CreatedAt is the timestamp when the proposal was created
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`

	// Associations
	Votes []ProposalVote `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the VotingProposal model
func (VotingProposal) TableName() string {
	return "voting_proposals"
}

// ProposalVote represents the proposal_votes table - a single weighted vote
// cast on a ratio change proposal
type ProposalVote struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ProposalID references the proposal the vote was cast on
	ProposalID int64 `gorm:"column:proposal_id;not null;uniqueIndex:idx_proposal_votes_proposal_voter,priority:1"`
	// Voter is the account that cast the vote
	Voter string `gorm:"column:voter;not null;type:text;uniqueIndex:idx_proposal_votes_proposal_voter,priority:2"`
	// Weight is the vote weight in base token units at the time of voting
	Weight int64 `gorm:"column:weight;not null"`
	// CreatedAt is the timestamp when the vote was cast
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the ProposalVote model
func (ProposalVote) TableName() string {
	return "proposal_votes"
}
