package server

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/billwatch/billwatch/internal/analysis"
	"github.com/billwatch/billwatch/internal/store"
)

type HealthResponse struct {
	Status        string `json:"status"`
	BillCount     int    `json:"bill_count"`
	MemberCount   int    `json:"member_count"`
	DBSizeBytes   int64  `json:"db_size_bytes"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := context.Background()

	counts, err := s.store.Counts(ctx)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var dbSize int64
	row := s.store.DB().QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
	_ = row.Scan(&dbSize)

	response := HealthResponse{
		Status:        "ok",
		BillCount:     counts.Bills,
		MemberCount:   counts.Members,
		DBSizeBytes:   dbSize,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	}

	writeJSON(w, response)
}

// MemberInfoResponse carries member identity fields.
type MemberInfoResponse struct {
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`
	Party      string `json:"party"`
}

// BillStatsResponse is the bill-statistics sub-object of a member
// statistics response. Rates are percentages rounded to one decimal.
type BillStatsResponse struct {
	TotalCount    int     `json:"total_count"`
	TotalPassRate float64 `json:"total_pass_rate"`
	LeadCount     int     `json:"lead_count"`
	LeadPassRate  float64 `json:"lead_pass_rate"`
	CoCount       int     `json:"co_count"`
	CoPassRate    float64 `json:"co_pass_rate"`
}

type CommitteeActivityResponse struct {
	ActiveCommittee string `json:"active_committee"`
	TotalCount      int    `json:"total_count"`
	LeadCount       int    `json:"lead_count"`
	CoCount         int    `json:"co_count"`
}

type MemberStatisticsResponse struct {
	MemberInfo     MemberInfoResponse          `json:"member_info"`
	BillStats      BillStatsResponse           `json:"bill_stats"`
	CommitteeStats []CommitteeActivityResponse `json:"committee_stats"`
}

type BillStatisticsResponse struct {
	BillCode      string  `json:"bill_code"`
	BillName      string  `json:"bill_name"`
	BillCommittee string  `json:"bill_committee"`
	BillCount     int     `json:"bill_count"`
	BillPassRate  float64 `json:"bill_pass_rate"`
}

func (s *Server) handleMemberStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path: /api/members/{id}/statistics
	rest := strings.TrimPrefix(r.URL.Path, "/api/members/")
	memberID, ok := strings.CutSuffix(rest, "/statistics")
	if !ok || memberID == "" || strings.Contains(memberID, "/") {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	if s.serveCached(w, r.URL.RequestURI()) {
		return
	}

	ctx := context.Background()

	member, err := s.store.GetMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Member not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	bills, err := s.store.GetBillsByMember(ctx, memberID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	stats := analysis.MemberStats(member, bills)
	s.writeAndCache(w, r.URL.RequestURI(), memberResponse(stats))
}

func (s *Server) handleTopMembers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	criterion := analysis.RankCriterion(r.URL.Query().Get("by"))
	if criterion == "" {
		criterion = analysis.RankTotalBills
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	if s.serveCached(w, r.URL.RequestURI()) {
		return
	}

	all, err := s.allMemberStatistics(context.Background())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	ranked := analysis.TopMembers(all, criterion, limit)
	response := make([]MemberStatisticsResponse, len(ranked))
	for i, stats := range ranked {
		response[i] = memberResponse(stats)
	}

	s.writeAndCache(w, r.URL.RequestURI(), response)
}

func (s *Server) handleBillStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	if s.serveCached(w, r.URL.RequestURI()) {
		return
	}

	bills, err := s.store.ListBills(context.Background())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	stats, err := analysis.BillStats(bills, limit)
	if err != nil {
		s.analysisError(w, err)
		return
	}

	response := make([]BillStatisticsResponse, len(stats))
	for i, bs := range stats {
		response[i] = BillStatisticsResponse{
			BillCode:      bs.BillCode,
			BillName:      bs.BillName,
			BillCommittee: bs.BillCommittee,
			BillCount:     bs.BillCount,
			BillPassRate:  percent(bs.BillPassRate),
		}
	}

	s.writeAndCache(w, r.URL.RequestURI(), response)
}

func (s *Server) handleConversion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.serveCached(w, r.URL.RequestURI()) {
		return
	}

	details, err := s.store.ListBillDetails(context.Background())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	report, err := analysis.Conversion(details)
	if err != nil {
		s.analysisError(w, err)
		return
	}

	s.writeAndCache(w, r.URL.RequestURI(), report)
}

func (s *Server) handleCommittees(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.serveCached(w, r.URL.RequestURI()) {
		return
	}

	bills, err := s.store.ListBills(context.Background())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	groups, err := analysis.ByCommittee(bills)
	if err != nil {
		s.analysisError(w, err)
		return
	}

	s.writeAndCache(w, r.URL.RequestURI(), groups)
}

func (s *Server) handleParties(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sortKey := analysis.SortKey(r.URL.Query().Get("sort"))
	if sortKey == "" {
		sortKey = analysis.SortByBillCount
	}

	if s.serveCached(w, r.URL.RequestURI()) {
		return
	}

	ctx := context.Background()
	bills, err := s.store.ListBills(ctx)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	proposers, err := s.store.ListProposers(ctx)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	members, err := s.store.ListMembers(ctx)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	parties, err := analysis.ByParty(bills, proposers, members)
	if err != nil {
		s.analysisError(w, err)
		return
	}
	analysis.SortParties(parties, sortKey)

	s.writeAndCache(w, r.URL.RequestURI(), parties)
}

func (s *Server) handleCrossParty(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.serveCached(w, r.URL.RequestURI()) {
		return
	}

	ctx := context.Background()
	bills, err := s.store.ListBills(ctx)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	proposers, err := s.store.ListProposers(ctx)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	members, err := s.store.ListMembers(ctx)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	crossParty := analysis.CrossPartyBills(bills, proposers, members)
	if crossParty == nil {
		crossParty = []analysis.CrossPartyBill{}
	}

	s.writeAndCache(w, r.URL.RequestURI(), crossParty)
}

func (s *Server) allMemberStatistics(ctx context.Context) ([]*analysis.MemberStatistics, error) {
	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	all := make([]*analysis.MemberStatistics, 0, len(members))
	for _, m := range members {
		bills, err := s.store.GetBillsByMember(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		all = append(all, analysis.MemberStats(m, bills))
	}
	return all, nil
}

func memberResponse(stats *analysis.MemberStatistics) MemberStatisticsResponse {
	response := MemberStatisticsResponse{
		MemberInfo: MemberInfoResponse{
			MemberID:   stats.MemberID,
			MemberName: stats.MemberName,
			Party:      stats.Party,
		},
		BillStats: BillStatsResponse{
			TotalCount:    stats.BillStats.TotalCount,
			TotalPassRate: percent(stats.BillStats.TotalPassRate),
			LeadCount:     stats.BillStats.LeadCount,
			LeadPassRate:  percent(stats.BillStats.LeadPassRate),
			CoCount:       stats.BillStats.CoCount,
			CoPassRate:    percent(stats.BillStats.CoPassRate),
		},
		CommitteeStats: make([]CommitteeActivityResponse, len(stats.CommitteeStats)),
	}
	for i, ca := range stats.CommitteeStats {
		response.CommitteeStats[i] = CommitteeActivityResponse{
			ActiveCommittee: ca.ActiveCommittee,
			TotalCount:      ca.TotalCount,
			LeadCount:       ca.LeadCount,
			CoCount:         ca.CoCount,
		}
	}
	return response
}

func (s *Server) analysisError(w http.ResponseWriter, err error) {
	if errors.Is(err, analysis.ErrEmptyPopulation) {
		http.Error(w, "No bill population loaded", http.StatusConflict)
		return
	}
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// serveCached writes a previously computed response for the key, if any.
func (s *Server) serveCached(w http.ResponseWriter, key string) bool {
	cached, found := s.cache.Get(key)
	if !found {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(cached.([]byte))
	return true
}

func (s *Server) writeAndCache(w http.ResponseWriter, key string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	s.cache.SetDefault(key, body)

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// percent converts an internal rate fraction to a percentage rounded to
// one decimal place. External responses carry percentages; internal
// aggregation keeps fractions.
func percent(rate float64) float64 {
	return math.Round(rate*1000) / 10
}
