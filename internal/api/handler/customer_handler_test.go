package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"credit-engine/internal/api/handler"
	"credit-engine/internal/api/handler/dto"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"
)

type MockCustomerService struct {
	mock.Mock
}

func (_m *MockCustomerService) Save(ctx context.Context, cust *customer.Customer) (*customer.Customer, error) {
	ret := _m.Called(ctx, cust)

	var r0 *customer.Customer
	if rf, ok := ret.Get(0).(func(context.Context, *customer.Customer) *customer.Customer); ok {
		r0 = rf(ctx, cust)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*customer.Customer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, *customer.Customer) error); ok {
		r1 = rf(ctx, cust)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockCustomerService) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *customer.Customer
	if rf, ok := ret.Get(0).(func(context.Context, int64) *customer.Customer); ok {
		r0 = rf(ctx, customerID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*customer.Customer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, customerID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockCustomerService) Update(ctx context.Context, customerID int64, upd customer.CustomerUpdate) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID, upd)

	var r0 *customer.Customer
	if rf, ok := ret.Get(0).(func(context.Context, int64, customer.CustomerUpdate) *customer.Customer); ok {
		r0 = rf(ctx, customerID, upd)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*customer.Customer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64, customer.CustomerUpdate) error); ok {
		r1 = rf(ctx, customerID, upd)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockCustomerService) Delete(ctx context.Context, customerID int64) error {
	ret := _m.Called(ctx, customerID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) error); ok {
		r0 = rf(ctx, customerID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockCustomerService) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	ret := _m.Called(ctx)

	var r0 []*customer.Customer
	if rf, ok := ret.Get(0).(func(context.Context) []*customer.Customer); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*customer.Customer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func testCustomer() *customer.Customer {
	return &customer.Customer{
		CustomerID: 1,
		FirstName:  "Cami",
		LastName:   "Cavalcante",
		CPF:        "28475934625",
		Email:      "camila@email.com",
		Income:     decimal.NewFromFloat(1000.0),
		Password:   "1234",
		Address: customer.Address{
			ZipCode: "12345",
			Street:  "Rua da Cami",
		},
	}
}

func validCreateCustomerRequest() dto.CreateCustomerRequest {
	return dto.CreateCustomerRequest{
		FirstName: "Cami",
		LastName:  "Cavalcante",
		CPF:       "28475934625",
		Email:     "camila@email.com",
		Income:    1000.0,
		Password:  "1234",
		ZipCode:   "12345",
		Street:    "Rua da Cami",
	}
}

func TestCreateCustomer(t *testing.T) {
	mockService := new(MockCustomerService)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := handler.NewCustomerHandler(mockService, logger)

	t.Run("success", func(t *testing.T) {
		reqBody := validCreateCustomerRequest()
		reqBodyBytes, _ := json.Marshal(reqBody)
		req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewReader(reqBodyBytes))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		mockService.On("Save", mock.Anything, mock.AnythingOfType("*customer.Customer")).Return(testCustomer(), nil).Once()

		h.CreateCustomer(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.CustomerView
		err := json.Unmarshal(rec.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "28475934625", resp.CPF)
		assert.Equal(t, "1000.00", resp.Income)
		mockService.AssertExpectations(t)
	})

	t.Run("invalid payload", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.CreateCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "Save")
	})

	t.Run("cpf with wrong length", func(t *testing.T) {
		reqBody := validCreateCustomerRequest()
		reqBody.CPF = "123"
		reqBodyBytes, _ := json.Marshal(reqBody)
		req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewReader(reqBodyBytes))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.CreateCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "Save")
	})

	t.Run("duplicate cpf", func(t *testing.T) {
		reqBody := validCreateCustomerRequest()
		reqBodyBytes, _ := json.Marshal(reqBody)
		req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewReader(reqBodyBytes))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		dupService := new(MockCustomerService)
		dupHandler := handler.NewCustomerHandler(dupService, logger)
		dupService.On("Save", mock.Anything, mock.AnythingOfType("*customer.Customer")).Return(nil, apperrors.ErrAlreadyExists).Once()

		dupHandler.CreateCustomer(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		dupService.AssertExpectations(t)
	})
}

func TestGetCustomer(t *testing.T) {
	mockService := new(MockCustomerService)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := handler.NewCustomerHandler(mockService, logger)

	t.Run("success", func(t *testing.T) {
		mockService.On("FindByID", mock.Anything, int64(1)).Return(testCustomer(), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/customers/1", nil)
		rec := httptest.NewRecorder()

		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("customerID", "1")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		h.GetCustomer(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.CustomerView
		err := json.Unmarshal(rec.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		mockService.AssertExpectations(t)
	})

	t.Run("invalid customer ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/customers/abc", nil)
		rec := httptest.NewRecorder()

		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("customerID", "abc")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		h.GetCustomer(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "FindByID")
	})

	t.Run("customer not found", func(t *testing.T) {
		mockService.On("FindByID", mock.Anything, int64(2)).Return(nil, apperrors.NewNotFound("Id %d not found", 2)).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/customers/2", nil)
		rec := httptest.NewRecorder()

		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("customerID", "2")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		h.GetCustomer(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp dto.ErrorResponse
		err := json.Unmarshal(rec.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Equal(t, "Id 2 not found", resp.Error.Message)
		mockService.AssertExpectations(t)
	})
}

func TestListCustomers(t *testing.T) {
	mockService := new(MockCustomerService)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := handler.NewCustomerHandler(mockService, logger)

	t.Run("success", func(t *testing.T) {
		mockService.On("FindAll", mock.Anything).Return([]*customer.Customer{testCustomer()}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
		rec := httptest.NewRecorder()

		h.ListCustomers(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp []dto.CustomerView
		err := json.Unmarshal(rec.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		mockService.AssertExpectations(t)
	})
}

func TestUpdateCustomer(t *testing.T) {
	mockService := new(MockCustomerService)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := handler.NewCustomerHandler(mockService, logger)

	validBody := dto.CustomerUpdateRequest{
		FirstName: "CamiUpdate",
		LastName:  "CavalcanteUpdate",
		Income:    5000.0,
		ZipCode:   "45656",
		Street:    "Rua Updated",
	}

	t.Run("success", func(t *testing.T) {
		updated := testCustomer()
		updated.FirstName = validBody.FirstName
		updated.Income = decimal.NewFromFloat(validBody.Income)

		mockService.On("Update", mock.Anything, int64(1), mock.AnythingOfType("customer.CustomerUpdate")).Return(updated, nil).Once()

		reqBodyBytes, _ := json.Marshal(validBody)
		req := httptest.NewRequest(http.MethodPatch, "/api/customers?customerId=1", bytes.NewReader(reqBodyBytes))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.UpdateCustomer(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.CustomerView
		err := json.Unmarshal(rec.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Equal(t, "CamiUpdate", resp.FirstName)
		assert.Equal(t, "5000.00", resp.Income)
		mockService.AssertExpectations(t)
	})

	t.Run("missing customerId query parameter", func(t *testing.T) {
		reqBodyBytes, _ := json.Marshal(validBody)
		req := httptest.NewRequest(http.MethodPatch, "/api/customers", bytes.NewReader(reqBodyBytes))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.UpdateCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "Update")
	})

	t.Run("customer not found", func(t *testing.T) {
		mockService.On("Update", mock.Anything, int64(99), mock.AnythingOfType("customer.CustomerUpdate")).
			Return(nil, apperrors.NewNotFound("Id %d not found", 99)).Once()

		reqBodyBytes, _ := json.Marshal(validBody)
		req := httptest.NewRequest(http.MethodPatch, "/api/customers?customerId=99", bytes.NewReader(reqBodyBytes))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.UpdateCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp dto.ErrorResponse
		err := json.Unmarshal(rec.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Equal(t, "Id 99 not found", resp.Error.Message)
		mockService.AssertExpectations(t)
	})
}

func TestDeleteCustomer(t *testing.T) {
	mockService := new(MockCustomerService)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := handler.NewCustomerHandler(mockService, logger)

	t.Run("success", func(t *testing.T) {
		mockService.On("Delete", mock.Anything, int64(1)).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/customers/1", nil)
		rec := httptest.NewRecorder()

		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("customerID", "1")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		h.DeleteCustomer(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("blocked by existing credits", func(t *testing.T) {
		mockService.On("Delete", mock.Anything, int64(2)).Return(apperrors.ErrConflict).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/customers/2", nil)
		rec := httptest.NewRecorder()

		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("customerID", "2")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		h.DeleteCustomer(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		mockService.AssertExpectations(t)
	})
}
