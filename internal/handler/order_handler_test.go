package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"homebite/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderHandler_Create(t *testing.T) {
	logger := zerolog.Nop()
	buyerID := uuid.New()
	dishID := uuid.New()

	testResponse := &model.OrderDTO{
		ID:       uuid.New(),
		BuyerID:  buyerID,
		Status:   "pending",
		Total:    18,
		Currency: "USD",
		Items:    []model.OrderItemOut{{ID: uuid.New(), DishID: &dishID, Quantity: 2, UnitPrice: 9, TotalPrice: 18}},
	}

	tests := []struct {
		name           string
		requestBody    any
		mockReturn     *model.OrderDTO
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name: "Success",
			requestBody: &model.OrderCreateRequest{
				Items:    []model.OrderItemIn{{DishID: dishID, Quantity: 2}},
				Currency: "USD",
			},
			mockReturn:     testResponse,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Empty order",
			requestBody:    &model.OrderCreateRequest{Items: []model.OrderItemIn{}},
			mockError:      model.ErrEmptyOrder,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name: "Dish not found",
			requestBody: &model.OrderCreateRequest{
				Items: []model.OrderItemIn{{DishID: uuid.New(), Quantity: 1}},
			},
			mockError:      model.ErrDishNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name: "Internal error",
			requestBody: &model.OrderCreateRequest{
				Items: []model.OrderItemIn{{DishID: dishID, Quantity: 1}},
			},
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
		{
			name:           "Invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)

			if tt.expectService {
				mockService.On("CreateOrder", mock.Anything, buyerID, mock.AnythingOfType("*model.OrderCreateRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			handler := NewOrderHandler(mockService, logger)

			var body []byte
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, _ = json.Marshal(tt.requestBody)
			}

			req := asUser(httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBuffer(body)), buyerID)
			w := httptest.NewRecorder()

			handler.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var response model.OrderDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
				assert.Equal(t, testResponse.ID, response.ID)
				assert.Equal(t, 18.0, response.Total)
			}

			if tt.expectService {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "CreateOrder")
			}
		})
	}
}

func TestOrderHandler_List(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()
	orders := []model.OrderDTO{{ID: uuid.New(), BuyerID: userID, Status: "pending", Items: []model.OrderItemOut{}}}

	tests := []struct {
		name           string
		query          string
		expectedAs     string
		expectedStatus int
	}{
		{name: "Default perspective is buyer", query: "", expectedAs: "buyer", expectedStatus: http.StatusOK},
		{name: "Buyer", query: "?as=buyer", expectedAs: "buyer", expectedStatus: http.StatusOK},
		{name: "Cook", query: "?as=cook", expectedAs: "cook", expectedStatus: http.StatusOK},
		{name: "Unknown perspective", query: "?as=admin", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			if tt.expectedAs != "" {
				mockService.On("List", mock.Anything, userID, tt.expectedAs).Return(orders, nil)
			}

			handler := NewOrderHandler(mockService, logger)
			req := asUser(httptest.NewRequest(http.MethodGet, "/api/orders"+tt.query, nil), userID)
			w := httptest.NewRecorder()

			handler.List(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}
