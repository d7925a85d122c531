package dashboard

import (
	"log/slog"
	"time"

	"github.com/inspectra/inspection-management/internal"
	"github.com/inspectra/inspection-management/internal/auth"
	orgDatamodel "github.com/inspectra/inspection-management/internal/core/datamodel/organization"
	"github.com/inspectra/inspection-management/internal/organization"
)

type OrgRepositoryAPI interface {
	GetAll() ([]*orgDatamodel.Organization, error)
}

// StatsRepositoryAPI answers aggregate questions over a set of org IDs.
type StatsRepositoryAPI interface {
	InspectionCountsByStatus(orgIDs []string) (map[string]int64, error)
	AverageScore(orgIDs []string) (*float64, error)
	CompletedAboveScore(orgIDs []string, threshold float64) (int64, error)
	OpenActionPlanCount(orgIDs []string) (int64, error)
	OverdueActionPlanCount(orgIDs []string, now time.Time) (int64, error)
	OrgRows(orgIDs []string) ([]OrgRow, error)
}

type Service struct {
	orgRepo   OrgRepositoryAPI
	statsRepo StatsRepositoryAPI
	resolver  *auth.Resolver
	logger    *slog.Logger
}

func NewService(orgRepo OrgRepositoryAPI, statsRepo StatsRepositoryAPI, resolver *auth.Resolver, logger *slog.Logger) *Service {
	return &Service{
		orgRepo:   orgRepo,
		statsRepo: statsRepo,
		resolver:  resolver,
		logger:    logger,
	}
}

// GetStats aggregates inspections and action plans across the subtree rooted
// at orgID. Non-admin callers can only look at their own organization's
// subtree.
func (s *Service) GetStats(actor *auth.User, orgID string) (*Stats, error) {
	if orgID == "" {
		orgID = actor.OrgID
	}

	subtree, _, err := s.subtree(actor, orgID)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.statsRepo.InspectionCountsByStatus(subtree)
	if err != nil {
		s.logger.Error("failed to aggregate inspections", "error", err, "org_id", orgID)
		return nil, internal.NewInternalError("failed to aggregate inspections", err)
	}

	avgScore, err := s.statsRepo.AverageScore(subtree)
	if err != nil {
		s.logger.Error("failed to aggregate scores", "error", err, "org_id", orgID)
		return nil, internal.NewInternalError("failed to aggregate scores", err)
	}

	open, err := s.statsRepo.OpenActionPlanCount(subtree)
	if err != nil {
		s.logger.Error("failed to count open action plans", "error", err, "org_id", orgID)
		return nil, internal.NewInternalError("failed to count open action plans", err)
	}

	now := time.Now()
	overdue, err := s.statsRepo.OverdueActionPlanCount(subtree, now)
	if err != nil {
		s.logger.Error("failed to count overdue action plans", "error", err, "org_id", orgID)
		return nil, internal.NewInternalError("failed to count overdue action plans", err)
	}

	compliant, err := s.statsRepo.CompletedAboveScore(subtree, complianceThreshold)
	if err != nil {
		s.logger.Error("failed to count compliant inspections", "error", err, "org_id", orgID)
		return nil, internal.NewInternalError("failed to count compliant inspections", err)
	}

	stats := &Stats{
		OrgID:               orgID,
		OrgCount:            len(subtree),
		InspectionsByStatus: byStatus,
		AverageScore:        avgScore,
		OpenActionPlans:     open,
		OverdueActionPlans:  overdue,
		ComplianceRate:      complianceRate(byStatus["completed"], compliant),
		GeneratedAt:         now,
	}

	s.logger.Info("dashboard stats generated",
		"org_id", orgID,
		"subtree_size", len(subtree),
		"open_action_plans", open,
		"overdue_action_plans", overdue)
	return stats, nil
}

// GetReportSummary returns a per-organization breakdown for the subtree,
// ordered root first, each row carrying its depth in the hierarchy.
func (s *Service) GetReportSummary(actor *auth.User, orgID string) (*ReportSummary, error) {
	if orgID == "" {
		orgID = actor.OrgID
	}

	subtree, depths, err := s.subtree(actor, orgID)
	if err != nil {
		return nil, err
	}

	rows, err := s.statsRepo.OrgRows(subtree)
	if err != nil {
		s.logger.Error("failed to build report rows", "error", err, "org_id", orgID)
		return nil, internal.NewInternalError("failed to build report rows", err)
	}

	for i := range rows {
		rows[i].Depth = depths[rows[i].OrgID]
	}

	return &ReportSummary{
		OrgID:       orgID,
		Rows:        rows,
		GeneratedAt: time.Now(),
	}, nil
}

// subtree resolves the org IDs under orgID (inclusive) and their depths.
// A cyclic hierarchy in the stored data surfaces as an internal error.
func (s *Service) subtree(actor *auth.User, orgID string) ([]string, map[string]int, error) {
	if actor.Role != auth.RoleSystemAdmin && actor.OrgID != orgID {
		return nil, nil, internal.ErrUnauthorizedAccess
	}

	records, err := s.orgRepo.GetAll()
	if err != nil {
		s.logger.Error("failed to load organizations", "error", err)
		return nil, nil, internal.NewInternalError("failed to load organizations", err)
	}

	roots, err := organization.BuildHierarchy(organization.FromDataModelSlice(records))
	if err != nil {
		s.logger.Error("organization hierarchy is not a tree", "error", err)
		return nil, nil, internal.NewInternalError("cyclic organization hierarchy detected", err)
	}
	node, err := organization.FindNode(roots, orgID)
	if err != nil {
		s.logger.Error("organization hierarchy is not a tree", "error", err)
		return nil, nil, internal.NewInternalError("cyclic organization hierarchy detected", err)
	}
	if node == nil {
		return nil, nil, internal.ErrOrgNotFound
	}

	flat, err := organization.Flatten([]*organization.Node{node})
	if err != nil {
		s.logger.Error("organization hierarchy is not a tree", "error", err)
		return nil, nil, internal.NewInternalError("cyclic organization hierarchy detected", err)
	}

	ids := make([]string, 0, len(flat))
	depths := make(map[string]int, len(flat))
	for _, n := range flat {
		ids = append(ids, n.ID)
		depths[n.ID] = n.Depth
	}
	return ids, depths, nil
}

// complianceThreshold is the minimum score a completed inspection needs to
// count as compliant.
const complianceThreshold = 80.0

// complianceRate is the share of completed inspections that cleared the
// threshold, in percent, or nil when nothing has completed yet.
func complianceRate(completed, compliant int64) *float64 {
	if completed == 0 {
		return nil
	}
	rate := float64(compliant) / float64(completed) * 100
	return &rate
}
