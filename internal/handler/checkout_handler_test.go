package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"victus-storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckoutHandler_Submit(t *testing.T) {
	confirmed := &model.CheckoutResult{
		Status:         model.CheckoutStatusConfirmed,
		OrderID:        42,
		TotalPrice:     decimal.NewFromInt(100),
		IdempotencyKey: "key-1",
		Order:          &model.OrderConfirmation{ID: 42},
		Notification:   model.Notification{Title: "Order Placed Successfully!", Description: "Order placed. Total: $100.00"},
	}
	placed := &model.CheckoutResult{
		Status:         model.CheckoutStatusPlaced,
		OrderID:        42,
		TotalPrice:     decimal.NewFromInt(100),
		IdempotencyKey: "key-1",
	}

	tests := []struct {
		name           string
		body           string
		header         string
		expectedKey    string
		mockReturn     *model.CheckoutResult
		mockError      error
		expectService  bool
		expectedStatus int
	}{
		{
			name:           "Confirmed",
			body:           `{"form":{"email":"ana@example.com"},"idempotencyKey":"key-1"}`,
			expectedKey:    "key-1",
			mockReturn:     confirmed,
			expectService:  true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Key from header",
			body:           `{"form":{"email":"ana@example.com"}}`,
			header:         "key-1",
			expectedKey:    "key-1",
			mockReturn:     confirmed,
			expectService:  true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Placed but unconfirmed",
			body:           `{"form":{"email":"ana@example.com"},"idempotencyKey":"key-1"}`,
			expectedKey:    "key-1",
			mockReturn:     placed,
			expectService:  true,
			expectedStatus: http.StatusAccepted,
		},
		{
			name:           "Missing information",
			body:           `{"form":{}}`,
			mockError:      model.MissingInformation(map[string]string{"email": "is required"}),
			expectService:  true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Empty cart",
			body:           `{"form":{}}`,
			mockError:      model.ErrEmptyCart,
			expectService:  true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Already running",
			body:           `{"form":{}}`,
			mockError:      model.ErrCheckoutInProgress,
			expectService:  true,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Order failed",
			body:           `{"form":{}}`,
			mockError:      model.OrderFailed(errors.New("Insufficient stock")),
			expectService:  true,
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "Invalid JSON",
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCheckoutService)
			if tt.expectService {
				svc.On("Checkout", mock.Anything, "s1", mock.MatchedBy(func(req model.CheckoutRequest) bool {
					return req.IdempotencyKey == tt.expectedKey
				})).Return(tt.mockReturn, tt.mockError)
			}

			h := NewCheckoutHandler(svc, zerolog.Nop())
			req := withURLParams(httptest.NewRequest(http.MethodPost, "/api/sessions/s1/checkout", bytes.NewBufferString(tt.body)), "sessionID", "s1")
			if tt.header != "" {
				req.Header.Set(IdempotencyKeyHeader, tt.header)
			}
			w := httptest.NewRecorder()
			h.Submit(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.mockReturn != nil {
				assert.Equal(t, tt.expectedKey, w.Header().Get(IdempotencyKeyHeader))

				var res model.CheckoutResult
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
				assert.Equal(t, tt.mockReturn.Status, res.Status)
				assert.Equal(t, int64(42), res.OrderID)
			}
			if tt.expectService {
				svc.AssertExpectations(t)
			} else {
				svc.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestCheckoutHandler_MissingInformationFields(t *testing.T) {
	svc := new(MockCheckoutService)
	svc.On("Checkout", mock.Anything, "s1", mock.Anything).
		Return(nil, model.MissingInformation(map[string]string{"cvv": "is required"}))

	h := NewCheckoutHandler(svc, zerolog.Nop())
	req := withURLParams(httptest.NewRequest(http.MethodPost, "/api/sessions/s1/checkout", bytes.NewBufferString(`{"form":{}}`)), "sessionID", "s1")
	w := httptest.NewRecorder()
	h.Submit(w, req)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Missing Information", resp.Title)
	assert.Equal(t, "is required", resp.Fields["cvv"])
}
