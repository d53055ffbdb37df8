package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lendly/rental-marketplace/internal/core/domain"
	"github.com/lendly/rental-marketplace/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubContractRepo struct {
	byID      map[int64]*domain.Contract
	nextID    int64
	saveErr   error // if set, Save returns this error
	findCalls int
}

func newStubContractRepo() *stubContractRepo {
	return &stubContractRepo{byID: make(map[int64]*domain.Contract), nextID: 1}
}

func (r *stubContractRepo) FindByID(_ context.Context, id int64) (*domain.Contract, error) {
	r.findCalls++
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrContractNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubContractRepo) FindAll(_ context.Context) ([]*domain.Contract, error) {
	out := make([]*domain.Contract, 0, len(r.byID))
	for _, c := range r.byID {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubContractRepo) Save(_ context.Context, c *domain.Contract) (*domain.Contract, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	}
	clone := *c
	r.byID[c.ID] = &clone
	return c, nil
}

func (r *stubContractRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrContractNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubItemRepo struct {
	byID      map[int64]*domain.Item
	findCalls int
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{byID: make(map[int64]*domain.Item)}
}

func (r *stubItemRepo) FindByID(_ context.Context, id int64) (*domain.Item, error) {
	r.findCalls++
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	clone := *i
	return &clone, nil
}

func (r *stubItemRepo) FindByName(_ context.Context, name string) (*domain.Item, error) {
	for _, i := range r.byID {
		if i.Name == name {
			clone := *i
			return &clone, nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (r *stubItemRepo) FindByNameContaining(_ context.Context, fragment string) ([]*domain.Item, error) {
	out := make([]*domain.Item, 0)
	for _, i := range r.byID {
		if containsFold(i.Name, fragment) {
			clone := *i
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubItemRepo) FindAll(_ context.Context) ([]*domain.Item, error) {
	out := make([]*domain.Item, 0, len(r.byID))
	for _, i := range r.byID {
		clone := *i
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubItemRepo) Save(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if item.ID == 0 {
		item.ID = int64(len(r.byID) + 1)
	}
	clone := *item
	r.byID[item.ID] = &clone
	return item, nil
}

func (r *stubItemRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubUserRepo struct {
	byID          map[int64]*domain.User
	byUsername    map[string]*domain.User
	findByIDCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:       make(map[int64]*domain.User),
		byUsername: make(map[string]*domain.User),
	}
}

func (r *stubUserRepo) add(u *domain.User) {
	r.byID[u.ID] = u
	r.byUsername[u.Username] = u
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.findByIDCalls++
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byUsername[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	if user.ID == 0 {
		user.ID = int64(len(r.byID) + 1)
	}
	clone := *user
	r.add(&clone)
	return user, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byUsername, u.Username)
	delete(r.byID, id)
	return nil
}

// recordingAudit captures the events handed to the audit pipeline.
type recordingAudit struct {
	events []domain.AuditEvent
}

func (a *recordingAudit) Record(e domain.AuditEvent) {
	a.events = append(a.events, e)
}

// denyAllPolicy rejects every mutation.
type denyAllPolicy struct{}

func (denyAllPolicy) CanModify(context.Context, string, ChangeTarget) bool { return false }

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

type contractFixture struct {
	contracts *stubContractRepo
	items     *stubItemRepo
	users     *stubUserRepo
	audit     *recordingAudit
	service   *ContractService
}

// newContractFixture seeds a lender "lena" owning item 10 (rate 26.95/day)
// and a rentee "rick".
func newContractFixture(t *testing.T, policy ChangePolicy) *contractFixture {
	t.Helper()

	contracts := newStubContractRepo()
	items := newStubItemRepo()
	users := newStubUserRepo()
	audit := &recordingAudit{}

	users.add(&domain.User{ID: 1, Username: "lena"})
	users.add(&domain.User{ID: 2, Username: "rick"})
	items.byID[10] = &domain.Item{ID: 10, Name: "ladder", Rate: 26.95, LenderID: 1}

	svc := NewContractService(contracts, items, users, policy, audit, zerolog.Nop())
	return &contractFixture{
		contracts: contracts,
		items:     items,
		users:     users,
		audit:     audit,
		service:   svc,
	}
}

func (f *contractFixture) createContract(t *testing.T) *domain.Contract {
	t.Helper()
	c, err := f.service.Save(context.Background(), ports.SaveContractInput{
		Length:         7,
		RenteeUsername: "rick",
		ItemID:         10,
	})
	if err != nil {
		t.Fatalf("seeding contract: %v", err)
	}
	return c
}

// ---------------------------------------------------------------------------
// Save
// ---------------------------------------------------------------------------

func TestContractService_Save_AssignsIDAndComputesFee(t *testing.T) {
	f := newContractFixture(t, nil)

	c, err := f.service.Save(context.Background(), ports.SaveContractInput{
		Length:         7,
		RenteeUsername: "rick",
		ItemID:         10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.ID == 0 {
		t.Fatal("expected an id to be assigned")
	}
	if c.Fee != 188.65 {
		t.Fatalf("fee = %v, want 188.65", c.Fee)
	}
	if !c.Active {
		t.Fatal("new contract must be active")
	}
	if c.RenteeID != 2 {
		t.Fatalf("renteeid = %d, want 2", c.RenteeID)
	}
	if c.StartDate != nil || c.EndDate != nil {
		t.Fatal("window must not be stamped before both parties accept")
	}

	if len(f.audit.events) != 1 || f.audit.events[0].Action != domain.AuditContractSaved {
		t.Fatalf("expected one contract_saved audit event, got %+v", f.audit.events)
	}
}

func TestContractService_Save_UnknownIDIsNotFound(t *testing.T) {
	f := newContractFixture(t, nil)

	_, err := f.service.Save(context.Background(), ports.SaveContractInput{
		ID:             99,
		Length:         2,
		RenteeUsername: "rick",
		ItemID:         10,
	})
	if !errors.Is(err, domain.ErrContractNotFound) {
		t.Fatalf("expected ErrContractNotFound, got %v", err)
	}
}

func TestContractService_Save_UnknownRentee(t *testing.T) {
	f := newContractFixture(t, nil)

	_, err := f.service.Save(context.Background(), ports.SaveContractInput{
		Length:         2,
		RenteeUsername: "ghost",
		ItemID:         10,
	})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestContractService_Save_UnknownItem(t *testing.T) {
	f := newContractFixture(t, nil)

	_, err := f.service.Save(context.Background(), ports.SaveContractInput{
		Length:         2,
		RenteeUsername: "rick",
		ItemID:         404,
	})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestContractService_Save_PreservesStampedWindow(t *testing.T) {
	f := newContractFixture(t, nil)
	c := f.createContract(t)

	// Both parties accept, stamping the window.
	accept := true
	if _, err := f.service.Update(context.Background(), ports.UpdateContractInput{
		ID: c.ID, ActingUsername: "rick", RenteeAccept: &accept,
	}); err != nil {
		t.Fatalf("rentee accept: %v", err)
	}
	stamped, err := f.service.Update(context.Background(), ports.UpdateContractInput{
		ID: c.ID, ActingUsername: "lena", LenderAccept: &accept,
	})
	if err != nil {
		t.Fatalf("lender accept: %v", err)
	}
	if stamped.StartDate == nil {
		t.Fatal("expected window to be stamped after mutual accept")
	}

	// A full resave with the accepts reset keeps the stamped window.
	resaved, err := f.service.Save(context.Background(), ports.SaveContractInput{
		ID:             c.ID,
		Length:         7,
		RenteeUsername: "rick",
		ItemID:         10,
	})
	if err != nil {
		t.Fatalf("resave: %v", err)
	}
	if resaved.StartDate == nil || !resaved.StartDate.Equal(*stamped.StartDate) {
		t.Fatalf("start = %v, want preserved %v", resaved.StartDate, stamped.StartDate)
	}
	if resaved.RenteeAccept || resaved.LenderAccept {
		t.Fatal("resave without flags must reset them")
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestContractService_Update_LenderCannotTouchRenteeFlags(t *testing.T) {
	f := newContractFixture(t, nil)
	c := f.createContract(t)

	yes := true
	got, err := f.service.Update(context.Background(), ports.UpdateContractInput{
		ID:             c.ID,
		ActingUsername: "lena",
		LenderAccept:   &yes,
		RenteeAccept:   &yes, // must be ignored
		RenteeComplete: &yes, // must be ignored
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.LenderAccept {
		t.Fatal("lenderaccept should be set")
	}
	if got.RenteeAccept || got.RenteeComplete {
		t.Fatal("lender must not be able to set the rentee's flags")
	}
}

func TestContractService_Update_RenteeCannotTouchLenderFlags(t *testing.T) {
	f := newContractFixture(t, nil)
	c := f.createContract(t)

	yes := true
	got, err := f.service.Update(context.Background(), ports.UpdateContractInput{
		ID:             c.ID,
		ActingUsername: "RICK", // identity match is case-insensitive
		RenteeAccept:   &yes,
		LenderAccept:   &yes, // must be ignored
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.RenteeAccept {
		t.Fatal("renteeaccept should be set")
	}
	if got.LenderAccept {
		t.Fatal("rentee must not be able to set the lender's flags")
	}
}

func TestContractService_Update_ThirdPartyRejected(t *testing.T) {
	f := newContractFixture(t, nil)
	f.users.add(&domain.User{ID: 3, Username: "mallory"})
	c := f.createContract(t)

	yes := true
	_, err := f.service.Update(context.Background(), ports.UpdateContractInput{
		ID:             c.ID,
		ActingUsername: "mallory",
		RenteeAccept:   &yes,
	})
	if !errors.Is(err, domain.ErrNotContractParty) {
		t.Fatalf("expected ErrNotContractParty, got %v", err)
	}
}

func TestContractService_Update_DenyingPolicy(t *testing.T) {
	f := newContractFixture(t, denyAllPolicy{})
	c := f.createContract(t)

	yes := true
	_, err := f.service.Update(context.Background(), ports.UpdateContractInput{
		ID:             c.ID,
		ActingUsername: "rick",
		RenteeAccept:   &yes,
	})
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestContractService_Update_OwnersOnlyPolicyAdmitsBothParties(t *testing.T) {
	f := newContractFixture(t, OwnersOnly{})
	f.users.add(&domain.User{ID: 3, Username: "mallory"})
	c := f.createContract(t)

	yes := true
	if _, err := f.service.Update(context.Background(), ports.UpdateContractInput{
		ID: c.ID, ActingUsername: "rick", RenteeAccept: &yes,
	}); err != nil {
		t.Fatalf("rentee update under ownership policy: %v", err)
	}
	if _, err := f.service.Update(context.Background(), ports.UpdateContractInput{
		ID: c.ID, ActingUsername: "LENA", LenderAccept: &yes,
	}); err != nil {
		t.Fatalf("lender update under ownership policy: %v", err)
	}

	_, err := f.service.Update(context.Background(), ports.UpdateContractInput{
		ID: c.ID, ActingUsername: "mallory", RenteeAccept: &yes,
	})
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for an outsider, got %v", err)
	}
}

func TestContractService_Update_LengthIsIgnored(t *testing.T) {
	f := newContractFixture(t, nil)
	c := f.createContract(t)

	longer := 30
	got, err := f.service.Update(context.Background(), ports.UpdateContractInput{
		ID:             c.ID,
		ActingUsername: "rick",
		Length:         &longer,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Length != 7 {
		t.Fatalf("length = %d, want unchanged 7", got.Length)
	}
	if got.Fee != 188.65 {
		t.Fatalf("fee = %v, want unchanged 188.65", got.Fee)
	}
}

func TestContractService_Update_CompletionDeactivates(t *testing.T) {
	f := newContractFixture(t, nil)
	c := f.createContract(t)

	yes := true
	if _, err := f.service.Update(context.Background(), ports.UpdateContractInput{
		ID: c.ID, ActingUsername: "rick", RenteeComplete: &yes,
	}); err != nil {
		t.Fatalf("rentee complete: %v", err)
	}

	mid, err := f.service.FindByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !mid.Active {
		t.Fatal("one-sided completion must keep the contract active")
	}

	got, err := f.service.Update(context.Background(), ports.UpdateContractInput{
		ID: c.ID, ActingUsername: "lena", LenderComplete: &yes,
	})
	if err != nil {
		t.Fatalf("lender complete: %v", err)
	}
	if got.Active {
		t.Fatal("mutual completion must deactivate the contract")
	}
}

// ---------------------------------------------------------------------------
// Agree
// ---------------------------------------------------------------------------

func TestContractService_Agree_SetsOwnAcceptFlag(t *testing.T) {
	f := newContractFixture(t, nil)
	c := f.createContract(t)

	got, err := f.service.Agree(context.Background(), c.ID, "lena")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.LenderAccept {
		t.Fatal("lender agree must set lenderaccept")
	}
	if got.RenteeAccept {
		t.Fatal("lender agree must not touch renteeaccept")
	}

	got, err = f.service.Agree(context.Background(), c.ID, "rick")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.RenteeAccept || !got.LenderAccept {
		t.Fatal("both accepts should now be set")
	}
	if got.StartDate == nil || got.EndDate == nil {
		t.Fatal("mutual agreement must stamp the rental window")
	}
}

func TestContractService_Agree_OutsiderRejected(t *testing.T) {
	f := newContractFixture(t, nil)
	f.users.add(&domain.User{ID: 3, Username: "mallory"})
	c := f.createContract(t)

	_, err := f.service.Agree(context.Background(), c.ID, "mallory")
	if !errors.Is(err, domain.ErrNotContractParty) {
		t.Fatalf("expected ErrNotContractParty, got %v", err)
	}
}

func TestContractService_Agree_LoadsEachRecordOnce(t *testing.T) {
	f := newContractFixture(t, nil)
	c := f.createContract(t)

	f.contracts.findCalls = 0
	f.items.findCalls = 0
	f.users.findByIDCalls = 0

	if _, err := f.service.Agree(context.Background(), c.ID, "lena"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.contracts.findCalls != 1 {
		t.Fatalf("contract lookups = %d, want 1", f.contracts.findCalls)
	}
	if f.items.findCalls != 1 {
		t.Fatalf("item lookups = %d, want 1", f.items.findCalls)
	}
	if f.users.findByIDCalls != 2 {
		t.Fatalf("user lookups = %d, want 2 (lender and rentee)", f.users.findByIDCalls)
	}
}

func TestContractService_Agree_MissingContract(t *testing.T) {
	f := newContractFixture(t, nil)

	_, err := f.service.Agree(context.Background(), 404, "rick")
	if !errors.Is(err, domain.ErrContractNotFound) {
		t.Fatalf("expected ErrContractNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestContractService_Delete(t *testing.T) {
	f := newContractFixture(t, nil)
	c := f.createContract(t)

	if err := f.service.Delete(context.Background(), c.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.service.FindByID(context.Background(), c.ID); !errors.Is(err, domain.ErrContractNotFound) {
		t.Fatalf("expected ErrContractNotFound after delete, got %v", err)
	}

	last := f.audit.events[len(f.audit.events)-1]
	if last.Action != domain.AuditContractDeleted || last.ContractID != c.ID {
		t.Fatalf("expected contract_deleted audit event, got %+v", last)
	}
}

func TestContractService_Delete_Missing(t *testing.T) {
	f := newContractFixture(t, nil)

	if err := f.service.Delete(context.Background(), 404); !errors.Is(err, domain.ErrContractNotFound) {
		t.Fatalf("expected ErrContractNotFound, got %v", err)
	}
}
