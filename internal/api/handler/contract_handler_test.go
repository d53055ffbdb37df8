package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lendly/rental-marketplace/internal/core/domain"
	"github.com/lendly/rental-marketplace/internal/core/ports"
)

type stubContractService struct {
	saveFn   func(ctx context.Context, input ports.SaveContractInput) (*domain.Contract, error)
	updateFn func(ctx context.Context, input ports.UpdateContractInput) (*domain.Contract, error)
	agreeFn  func(ctx context.Context, id int64, actingUsername string) (*domain.Contract, error)
	findFn   func(ctx context.Context, id int64) (*domain.Contract, error)
}

func (s *stubContractService) Save(ctx context.Context, input ports.SaveContractInput) (*domain.Contract, error) {
	return s.saveFn(ctx, input)
}

func (s *stubContractService) Update(ctx context.Context, input ports.UpdateContractInput) (*domain.Contract, error) {
	return s.updateFn(ctx, input)
}

func (s *stubContractService) Agree(ctx context.Context, id int64, actingUsername string) (*domain.Contract, error) {
	return s.agreeFn(ctx, id, actingUsername)
}

func (s *stubContractService) FindByID(ctx context.Context, id int64) (*domain.Contract, error) {
	return s.findFn(ctx, id)
}

func (s *stubContractService) FindAll(context.Context) ([]*domain.Contract, error) {
	return nil, nil
}

func (s *stubContractService) Delete(context.Context, int64) error {
	return nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestContractHandler_New_RenteeIsCaller(t *testing.T) {
	e := newTestEcho()
	stub := &stubContractService{
		saveFn: func(ctx context.Context, input ports.SaveContractInput) (*domain.Contract, error) {
			if input.RenteeUsername != "rick" {
				t.Fatalf("rentee = %q, want caller rick", input.RenteeUsername)
			}
			if input.ItemID != 10 || input.Length != 7 {
				t.Fatalf("unexpected input: %+v", input)
			}
			if input.ID != 0 {
				t.Fatalf("id = %d, want 0 for create", input.ID)
			}
			return &domain.Contract{ID: 42, Length: 7, Fee: 188.65, Active: true, ItemID: 10, RenteeID: 2}, nil
		},
	}
	handler := NewContractHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/contracts/new/10", strings.NewReader(`{"contractlength":7}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/contracts/new/:itemid")
	c.SetParamNames("itemid")
	c.SetParamValues("10")
	c.Set("username", "rick")

	if err := handler.New(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/contracts/contract/42" {
		t.Fatalf("location = %q", loc)
	}
}

func TestContractHandler_New_MissingIdentity(t *testing.T) {
	e := newTestEcho()
	handler := NewContractHandler(&stubContractService{})

	req := httptest.NewRequest(http.MethodPost, "/contracts/new/10", strings.NewReader(`{"contractlength":7}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("itemid")
	c.SetParamValues("10")

	err := handler.New(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestContractHandler_New_RejectsNonPositiveLength(t *testing.T) {
	e := newTestEcho()
	handler := NewContractHandler(&stubContractService{
		saveFn: func(context.Context, ports.SaveContractInput) (*domain.Contract, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/contracts/new/10", strings.NewReader(`{"contractlength":0}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("itemid")
	c.SetParamValues("10")
	c.Set("username", "rick")

	err := handler.New(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestContractHandler_Update_ForwardsOnlySentFlags(t *testing.T) {
	e := newTestEcho()
	stub := &stubContractService{
		updateFn: func(ctx context.Context, input ports.UpdateContractInput) (*domain.Contract, error) {
			if input.ActingUsername != "lena" || input.ID != 42 {
				t.Fatalf("unexpected input: %+v", input)
			}
			if input.LenderAccept == nil || !*input.LenderAccept {
				t.Fatalf("lenderaccept pointer not forwarded")
			}
			if input.RenteeAccept != nil || input.RenteeComplete != nil || input.LenderComplete != nil {
				t.Fatalf("unsent flags must stay nil: %+v", input)
			}
			return &domain.Contract{ID: 42, LenderAccept: true, Active: true}, nil
		},
	}
	handler := NewContractHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/contracts/contract/42", strings.NewReader(`{"lenderaccept":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("contractid")
	c.SetParamValues("42")
	c.Set("username", "lena")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestContractHandler_Agree_OutsiderGets404(t *testing.T) {
	e := newTestEcho()
	stub := &stubContractService{
		agreeFn: func(ctx context.Context, id int64, actingUsername string) (*domain.Contract, error) {
			return nil, domain.ErrNotContractParty
		},
	}
	handler := NewContractHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/contracts/contract/agree/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("contractid")
	c.SetParamValues("42")
	c.Set("username", "mallory")

	err := handler.Agree(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
}

func TestContractHandler_Agree_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubContractService{
		agreeFn: func(ctx context.Context, id int64, actingUsername string) (*domain.Contract, error) {
			if id != 42 || actingUsername != "rick" {
				t.Fatalf("unexpected args: %d %s", id, actingUsername)
			}
			return &domain.Contract{ID: 42, RenteeAccept: true, Active: true}, nil
		},
	}
	handler := NewContractHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/contracts/contract/agree/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("contractid")
	c.SetParamValues("42")
	c.Set("username", "rick")

	if err := handler.Agree(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/contracts/contract/42" {
		t.Fatalf("location = %q", loc)
	}
}

func TestContractHandler_Get_InvalidID(t *testing.T) {
	e := newTestEcho()
	handler := NewContractHandler(&stubContractService{})

	req := httptest.NewRequest(http.MethodGet, "/contracts/contract/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("contractid")
	c.SetParamValues("abc")

	err := handler.Get(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestContractHandler_Get_NotFoundPassesThrough(t *testing.T) {
	e := newTestEcho()
	handler := NewContractHandler(&stubContractService{
		findFn: func(ctx context.Context, id int64) (*domain.Contract, error) {
			return nil, domain.ErrContractNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/contracts/contract/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("contractid")
	c.SetParamValues("42")

	if err := handler.Get(c); !errors.Is(err, domain.ErrContractNotFound) {
		t.Fatalf("expected ErrContractNotFound for the error handler, got %v", err)
	}
}
