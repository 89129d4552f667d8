//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"examgate/internal/domain/identity"
	"examgate/internal/handler/api"
	resdto "examgate/internal/handler/dto/response"
	"examgate/internal/infra"
	"examgate/internal/usecase/commands"
	"examgate/internal/usecase/queries"
	"examgate/tests/common/builder"
	"examgate/tests/common/httptest"
	"examgate/tests/common/testutil"
	commandsmock "examgate/tests/mock/commands"
	queriesmock "examgate/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SlotHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSlotAdminCommands
	mockQueries  *queriesmock.MockSlotQueries
	handler      *api.SlotHandler
}

func (s *SlotHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSlotAdminCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSlotQueries(s.mockCtrl)
	s.handler = api.NewSlotHandler(s.mockCommands, s.mockQueries)

	// Mock admin middleware for testing
	adminMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("applicant_id", uuid.New())
		c.Set("applicant_role", identity.RoleAdmin)
		c.Next()
	}

	s.router.GET("/slots", s.handler.ListOpenSlots)
	s.router.GET("/slots/:id", s.handler.GetSlot)
	s.router.POST("/slots", adminMiddleware, s.handler.CreateSlot)
	s.router.PUT("/slots/:id", adminMiddleware, s.handler.UpdateSlot)
	s.router.POST("/slots/:id/close", adminMiddleware, s.handler.CloseSlot)
	s.router.DELETE("/slots/:id", adminMiddleware, s.handler.DeleteSlot)
}

func (s *SlotHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSlotHandlerSuite(t *testing.T) {
	suite.Run(t, new(SlotHandlerTestSuite))
}

// ================================================================================
// TestListOpenSlots
// ================================================================================

func (s *SlotHandlerTestSuite) TestListOpenSlots() {
	url := "/slots"

	views := []*queries.SlotView{
		builder.NewSlotBuilder().BuildView(),
		builder.NewSlotBuilder().WithCapacity(10).BuildView(),
	}

	s.Run("success: returns open slot list", func() {
		s.mockQueries.EXPECT().ListOpen(gomock.Any(), (*string)(nil), 50).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response []resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal(int32(3), response[0].RemainingSeats)
		s.Equal(int32(10), response[1].RemainingSeats)
	})

	s.Run("success: kind and limit filters are forwarded", func() {
		kind := "physical_appointment"
		s.mockQueries.EXPECT().ListOpen(gomock.Any(), &kind, 5).
			Return(views[:1], nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?kind=physical_appointment&limit=5", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().ListOpen(gomock.Any(), (*string)(nil), 50).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestGetSlot
// ================================================================================

func (s *SlotHandlerTestSuite) TestGetSlot() {
	slotID := uuid.New()
	url := "/slots/" + slotID.String()

	returnView := builder.NewSlotBuilder().BuildView()
	returnView.ID = slotID

	s.Run("success: returns 200 OK with SlotResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), slotID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(slotID, response.ID)
		s.Equal("voucher_exam", response.Kind)
		s.True(response.IsAvailable)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/slots/invalid-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid slot ID")
	})

	s.Run("error: 404 Not Found for missing slot", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), slotID).
			Return(nil, infra.NewRepoErr("slot not found", infra.KindNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Slot not found")
	})
}

// ================================================================================
// TestCreateSlot
// ================================================================================

func (s *SlotHandlerTestSuite) TestCreateSlot() {
	url := "/slots"

	reqBody := builder.NewSlotBuilder().BuildRequestDTO()
	returnView := builder.NewSlotBuilder().BuildView()

	s.Run("success: returns 201 Created with SlotResponse", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(int32(3), response.MaxCapacity)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: kind (required)", mutate: testutil.Field("kind", nil)},
			{name: "missing field: exam_date (required)", mutate: testutil.Field("exam_date", nil)},
			{name: "missing field: authority (required)", mutate: testutil.Field("authority", nil)},
			{name: "missing field: location (required)", mutate: testutil.Field("location", nil)},
			{name: "max_capacity below one", mutate: testutil.Field("max_capacity", 0)},
			{name: "negative price", mutate: testutil.Field("price_cents", -100)},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: 422 Unprocessable Entity on domain rejection", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrInvalidSlotInput).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid slot input")
	})

	s.Run("error: 500 Internal Server Error on command failure", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestUpdateSlot
// ================================================================================

func (s *SlotHandlerTestSuite) TestUpdateSlot() {
	slotID := uuid.New()
	url := "/slots/" + slotID.String()

	reqBody := builder.NewSlotBuilder().WithCapacity(5).BuildRequestDTO()
	returnView := builder.NewSlotBuilder().WithCapacity(5).BuildView()
	returnView.ID = slotID

	s.Run("success: returns 200 OK with updated SlotResponse", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), slotID, gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		var response resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int32(5), response.MaxCapacity)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/slots/invalid-uuid", reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid slot ID")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "slot not found",
				commandsError:  commands.ErrSlotNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Slot not found",
			},
			{
				name:           "capacity below held bookings",
				commandsError:  commands.ErrCapacityBelowHeld,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Capacity cannot drop",
			},
			{
				name:           "invalid input",
				commandsError:  commands.ErrInvalidSlotInput,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Invalid slot input",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Update(gomock.Any(), slotID, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestCloseSlot
// ================================================================================

func (s *SlotHandlerTestSuite) TestCloseSlot() {
	slotID := uuid.New()
	url := "/slots/" + slotID.String() + "/close"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Close(gomock.Any(), slotID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for missing slot", func() {
		s.mockCommands.EXPECT().Close(gomock.Any(), slotID).
			Return(commands.ErrSlotNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Slot not found")
	})
}

// ================================================================================
// TestDeleteSlot
// ================================================================================

func (s *SlotHandlerTestSuite) TestDeleteSlot() {
	slotID := uuid.New()
	url := "/slots/" + slotID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), slotID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 Conflict when purchases reference the slot", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), slotID).
			Return(commands.ErrSlotHasPurchases).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "still has purchases")
	})

	s.Run("error: 404 Not Found for missing slot", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), slotID).
			Return(commands.ErrSlotNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Slot not found")
	})
}
