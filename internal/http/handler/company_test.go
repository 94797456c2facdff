package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docflow/internal/model"
	"docflow/internal/service"
	serviceMocks "docflow/internal/service/mocks"
)

func TestCreateCompany(t *testing.T) {
	mockSvc := new(serviceMocks.MockCompanyService)
	app := fiber.New()
	app.Post("/companies", CreateCompany(mockSvc))

	postJSON := func(payload any) *http.Response {
		b, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/companies", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateCompanyInput) bool {
			return in.CompanyName == "Acme Corp" &&
				in.YearOfAssignment != nil && *in.YearOfAssignment == 2026
		})).Return(&model.Company{ID: "company-1", CompanyName: "Acme Corp"}, nil).Once()

		resp := postJSON(map[string]any{
			"company_name":       "Acme Corp",
			"year_of_assignment": 2026,
		})

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Company successfully registered", body["message"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing name", func(t *testing.T) {
		resp := postJSON(map[string]any{"year_of_assignment": 2026})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "VALIDATION_ERROR", res.Error.Code)
	})
}

func TestGetMyCompany(t *testing.T) {
	t.Run("returns the caller's company", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCompanyService)
		user := &model.User{ID: "user-1", CompanyID: "company-1"}
		app := fiber.New()
		app.Get("/companies/me", withIdentity(user, &model.Profile{UserID: "user-1"}), GetMyCompany(mockSvc))

		mockSvc.On("Get", mock.Anything, "company-1").
			Return(&model.Company{ID: "company-1", CompanyName: "Acme Corp"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/companies/me", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var company model.Company
		json.NewDecoder(resp.Body).Decode(&company)
		assert.Equal(t, "Acme Corp", company.CompanyName)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no company attached", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCompanyService)
		user := &model.User{ID: "user-1"}
		app := fiber.New()
		app.Get("/companies/me", withIdentity(user, nil), GetMyCompany(mockSvc))

		req := httptest.NewRequest(http.MethodGet, "/companies/me", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestGetCompany(t *testing.T) {
	mockSvc := new(serviceMocks.MockCompanyService)
	app := fiber.New()
	app.Get("/companies/:id", GetCompany(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := "0b9adfcb-6a3e-4a3e-b3d0-2e22b78a5b0a"
		mockSvc.On("Get", mock.Anything, id).
			Return(&model.Company{ID: id}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/companies/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/companies/not-a-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})

	t.Run("not found", func(t *testing.T) {
		id := "1d9adfcb-6a3e-4a3e-b3d0-2e22b78a5b0a"
		mockSvc.On("Get", mock.Anything, id).
			Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/companies/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCompanyUserSummary(t *testing.T) {
	mockSvc := new(serviceMocks.MockCompanyService)
	app := fiber.New()
	app.Get("/companies/summary/user", CompanyUserSummary(mockSvc))

	mockSvc.On("UserCountSummary", mock.Anything).Return([]model.CompanyUserCount{
		{CompanyID: "company-1", CompanyName: "Acme Corp", UserCount: 3},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/companies/summary/user", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []model.CompanyUserCount `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Len(t, body.Data, 1)
	assert.Equal(t, 3, body.Data[0].UserCount)
}

func TestUpdateCompany(t *testing.T) {
	mockSvc := new(serviceMocks.MockCompanyService)
	app := fiber.New()
	app.Put("/companies/:id", UpdateCompany(mockSvc))

	id := "2c9adfcb-6a3e-4a3e-b3d0-2e22b78a5b0a"
	mockSvc.On("Update", mock.Anything, id, mock.MatchedBy(func(in service.UpdateCompanyInput) bool {
		return in.CompanyName != nil && *in.CompanyName == "Acme Holdings" &&
			in.YearOfAssignment == nil
	})).Return(&model.Company{ID: id, CompanyName: "Acme Holdings"}, nil).Once()

	b, _ := json.Marshal(map[string]any{"company_name": "Acme Holdings"})
	req := httptest.NewRequest(http.MethodPut, "/companies/"+id, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "Company updated successfully", body["message"])
	mockSvc.AssertExpectations(t)
}

func TestDeleteCompany(t *testing.T) {
	mockSvc := new(serviceMocks.MockCompanyService)
	app := fiber.New()
	app.Delete("/companies/:id", DeleteCompany(mockSvc))

	id := "3e9adfcb-6a3e-4a3e-b3d0-2e22b78a5b0a"
	mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/companies/"+id, nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "Company deleted successfully", body["message"])
	mockSvc.AssertExpectations(t)
}
