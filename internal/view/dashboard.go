package view

import (
	"context"

	"docuflow/internal/domain"
	"docuflow/internal/state"
)

// defaultSort keeps accumulated pages in a stable order so the short-page
// termination check sees each row exactly once.
const defaultSort = "updatedAt,desc"

// DashboardView presents a locally-paginated, role-filtered document table.
// The backend only supports pass-through pagination and its filters do not
// exclude DRAFTs for reviewers, so the view pulls every backend page into
// memory, applies the role rule, and slices the requested window itself.
// That is the only way to get a total that reflects the post-filter set
// without a dedicated aggregate endpoint; it costs O(total documents)
// requests and memory per reload.
type DashboardView struct {
	api    DocumentAPI
	users  UserDirectory
	roles  RoleSource
	logger domain.Logger

	documents *state.Cell[[]domain.Document]
	total     *state.Cell[int]
	loading   *state.Cell[bool]

	page *state.Cell[int]
	size *state.Cell[int]

	statusFilter       *state.Cell[domain.DocumentStatus]
	creatorFilter      *state.Cell[string]
	creatorEmailFilter *state.Cell[string]

	userOptions *state.Cell[[]domain.User]
	usersPage   *state.Cell[int]
}

// NewDashboardView creates the listing view with default pagination state.
func NewDashboardView(api DocumentAPI, users UserDirectory, roles RoleSource, logger domain.Logger) *DashboardView {
	return &DashboardView{
		api:                api,
		users:              users,
		roles:              roles,
		logger:             logger,
		documents:          state.NewCell([]domain.Document(nil)),
		total:              state.NewCell(0),
		loading:            state.NewCell(false),
		page:               state.NewCell(DefaultPage),
		size:               state.NewCell(DefaultPageSize),
		statusFilter:       state.NewCell(domain.DocumentStatus("")),
		creatorFilter:      state.NewCell(""),
		creatorEmailFilter: state.NewCell(""),
		userOptions:        state.NewCell([]domain.User(nil)),
		usersPage:          state.NewCell(DefaultPage),
	}
}

// Init performs the initial load. The user dropdown is only populated for
// roles that can actually filter by creator.
func (v *DashboardView) Init(ctx context.Context) {
	v.LoadDocuments(ctx)
	if !v.roles.IsUser() {
		v.LoadUsers(ctx)
	}
}

func (v *DashboardView) query() domain.ListQuery {
	return domain.ListQuery{
		Sort:         defaultSort,
		Status:       v.statusFilter.Get(),
		CreatorID:    v.creatorFilter.Get(),
		CreatorEmail: v.creatorEmailFilter.Get(),
	}
}

// LoadDocuments refetches the whole filtered set and slices out the current
// page. A failed page fetch aborts the loop and keeps the previously
// displayed rows; stale-but-visible beats blanking the table.
func (v *DashboardView) LoadDocuments(ctx context.Context) {
	v.loading.Set(true)

	q := v.query()
	var all []domain.Document
	for fetchPage := 1; ; fetchPage++ {
		q.Page = fetchPage
		q.Size = fetchPageSize
		res, err := v.api.ListDocuments(ctx, q)
		if err != nil {
			v.logger.Error("Failed to load documents", err, "page", fetchPage)
			v.loading.Set(false)
			return
		}
		all = append(all, res.Results...)
		if len(res.Results) < fetchPageSize {
			break
		}
	}

	// Non-USER roles never see drafts, regardless of what the backend
	// returned.
	if !v.roles.IsUser() {
		visible := all[:0]
		for _, doc := range all {
			if doc.Status != domain.StatusDraft {
				visible = append(visible, doc)
			}
		}
		all = visible
	}

	v.total.Set(len(all))

	page, size := v.page.Get(), v.size.Get()
	start := (page - 1) * size
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	v.documents.Set(all[start:end])
	v.loading.Set(false)
}

// Restore sets pagination and filter state in one step without reloading,
// for shells that collect the state up front (CLI flags, URL params). The
// creator-id/creator-email exclusivity still holds: when both are given the
// id wins.
func (v *DashboardView) Restore(page, size int, status domain.DocumentStatus, creatorID, creatorEmail string) {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if creatorID != "" {
		creatorEmail = ""
	}
	v.page.Set(page)
	v.size.Set(size)
	v.statusFilter.Set(status)
	v.creatorFilter.Set(creatorID)
	v.creatorEmailFilter.Set(creatorEmail)
}

// OnStatusChange applies a status filter and reloads from page 1.
func (v *DashboardView) OnStatusChange(ctx context.Context, status domain.DocumentStatus) {
	v.statusFilter.Set(status)
	v.page.Set(DefaultPage)
	v.LoadDocuments(ctx)
}

// OnCreatorChange applies a creator-id filter. Creator-id and creator-email
// are mutually exclusive; selecting one clears the other.
func (v *DashboardView) OnCreatorChange(ctx context.Context, creatorID string) {
	v.creatorFilter.Set(creatorID)
	v.creatorEmailFilter.Set("")
	v.page.Set(DefaultPage)
	v.LoadDocuments(ctx)
}

// OnCreatorEmailChange applies a creator-email filter, clearing creator-id.
func (v *DashboardView) OnCreatorEmailChange(ctx context.Context, email string) {
	v.creatorEmailFilter.Set(email)
	v.creatorFilter.Set("")
	v.page.Set(DefaultPage)
	v.LoadDocuments(ctx)
}

// ResetFilters clears every filter and reloads from page 1.
func (v *DashboardView) ResetFilters(ctx context.Context) {
	v.statusFilter.Set("")
	v.creatorFilter.Set("")
	v.creatorEmailFilter.Set("")
	v.page.Set(DefaultPage)
	v.LoadDocuments(ctx)
}

// OnPageChange moves to the given 1-based page and size and reloads.
func (v *DashboardView) OnPageChange(ctx context.Context, page, size int) {
	v.page.Set(page)
	v.size.Set(size)
	v.LoadDocuments(ctx)
}

// OnSortChange issues a single direct request at the current page and size.
// This path skips the accumulation loop: the role filter is not applied and
// the total comes straight from the backend count, so it can disagree with
// the filtered total shown before sorting. Preserved as observed behavior.
func (v *DashboardView) OnSortChange(ctx context.Context, field, direction string) {
	v.loading.Set(true)

	q := v.query()
	q.Page = v.page.Get()
	q.Size = v.size.Get()
	q.Sort = field + "," + direction

	res, err := v.api.ListDocuments(ctx, q)
	if err != nil {
		v.logger.Error("Failed to sort documents", err, "sort", q.Sort)
		v.loading.Set(false)
		return
	}
	v.documents.Set(res.Results)
	v.total.Set(res.Count)
	v.loading.Set(false)
}

// LoadUsers fetches the current page of the creator dropdown.
func (v *DashboardView) LoadUsers(ctx context.Context) {
	users, err := v.users.ListUsers(ctx, v.usersPage.Get(), DefaultUsersPageSize)
	if err != nil {
		v.logger.Error("Failed to load users", err)
		return
	}
	v.userOptions.Set(users)
}

// NextUserPage advances the creator dropdown one page.
func (v *DashboardView) NextUserPage(ctx context.Context) {
	v.usersPage.Set(v.usersPage.Get() + 1)
	v.LoadUsers(ctx)
}

// PrevUserPage moves the creator dropdown back one page, never below 1.
func (v *DashboardView) PrevUserPage(ctx context.Context) {
	if page := v.usersPage.Get(); page > 1 {
		v.usersPage.Set(page - 1)
		v.LoadUsers(ctx)
	}
}

func (v *DashboardView) Documents() []domain.Document  { return v.documents.Get() }
func (v *DashboardView) Total() int                    { return v.total.Get() }
func (v *DashboardView) Loading() bool                 { return v.loading.Get() }
func (v *DashboardView) Page() int                     { return v.page.Get() }
func (v *DashboardView) Size() int                     { return v.size.Get() }
func (v *DashboardView) Users() []domain.User          { return v.userOptions.Get() }
func (v *DashboardView) UsersPage() int                { return v.usersPage.Get() }
func (v *DashboardView) CreatorFilter() string         { return v.creatorFilter.Get() }
func (v *DashboardView) CreatorEmailFilter() string    { return v.creatorEmailFilter.Get() }
func (v *DashboardView) StatusFilter() domain.DocumentStatus {
	return v.statusFilter.Get()
}

// FilterableStatuses lists the statuses offered in the filter dropdown.
// Non-USER roles never see drafts, so DRAFT is not offered to them either.
func (v *DashboardView) FilterableStatuses() []domain.DocumentStatus {
	if v.roles.IsUser() {
		return domain.DocumentStatuses
	}
	statuses := make([]domain.DocumentStatus, 0, len(domain.DocumentStatuses)-1)
	for _, status := range domain.DocumentStatuses {
		if status != domain.StatusDraft {
			statuses = append(statuses, status)
		}
	}
	return statuses
}
