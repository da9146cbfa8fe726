/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package collection

import (
	"encoding/json"
	"net/http"

	"github.com/migrata/compass/internal/collection/constants"
	"github.com/migrata/compass/internal/collection/model"
	serverconst "github.com/migrata/compass/internal/system/constants"
	"github.com/migrata/compass/internal/system/error/apierror"
	"github.com/migrata/compass/internal/system/error/serviceerror"
	"github.com/migrata/compass/internal/system/log"
	sysutils "github.com/migrata/compass/internal/system/utils"
)

// Tenant context request headers.
const (
	headerClientAccountID = "X-Client-Account-Id"
	headerEngagementID    = "X-Engagement-Id"
	headerUserID          = "X-User-Id"
)

// collectionHandler handles collection flow HTTP requests.
type collectionHandler struct {
	collectionService CollectionServiceInterface
}

func newCollectionHandler(collectionService CollectionServiceInterface) *collectionHandler {
	return &collectionHandler{
		collectionService: collectionService,
	}
}

// HandleFlowCreateRequest handles the flow creation request.
func (h *collectionHandler) HandleFlowCreateRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CollectionHandler"))

	createRequest, err := sysutils.DecodeJSONBody[model.CreateFlowRequest](r)
	if err != nil {
		writeDecodeError(w, logger)
		return
	}
	createRequest.Tenant = tenantFromRequest(r)

	flowState, svcErr := h.collectionService.CreateFlow(*createRequest)
	if svcErr != nil {
		handleServiceError(w, logger, svcErr)
		return
	}
	writeJSONResponse(w, logger, http.StatusCreated, flowState)
}

// HandleFlowGetRequest handles the flow retrieval request.
func (h *collectionHandler) HandleFlowGetRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CollectionHandler"))

	flowID := sysutils.SanitizeString(r.PathValue("id"))
	flowState, svcErr := h.collectionService.GetFlow(flowID, tenantFromRequest(r))
	if svcErr != nil {
		handleServiceError(w, logger, svcErr)
		return
	}
	writeJSONResponse(w, logger, http.StatusOK, flowState)
}

// HandleFlowDeleteRequest handles the flow deletion request.
func (h *collectionHandler) HandleFlowDeleteRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CollectionHandler"))

	flowID := sysutils.SanitizeString(r.PathValue("id"))
	if svcErr := h.collectionService.DeleteFlow(flowID, tenantFromRequest(r)); svcErr != nil {
		handleServiceError(w, logger, svcErr)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSubmitRequest handles a questionnaire submission against the flow.
func (h *collectionHandler) HandleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CollectionHandler"))

	flowID := sysutils.SanitizeString(r.PathValue("id"))
	submitRequest, err := sysutils.DecodeJSONBody[model.SubmitRequest](r)
	if err != nil {
		writeDecodeError(w, logger)
		return
	}
	submitRequest.QuestionnaireID = sysutils.SanitizeString(submitRequest.QuestionnaireID)
	submitRequest.SaveType = sysutils.SanitizeString(submitRequest.SaveType)

	result, svcErr := h.collectionService.Submit(flowID, tenantFromRequest(r), *submitRequest)
	if svcErr != nil {
		handleServiceError(w, logger, svcErr)
		return
	}
	writeJSONResponse(w, logger, http.StatusOK, result)

	logger.Debug("Submission request handled successfully",
		log.String(log.LoggerKeyFlowID, flowID))
}

// HandleWorkflowStatusRequest handles the workflow status request.
func (h *collectionHandler) HandleWorkflowStatusRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CollectionHandler"))

	flowID := sysutils.SanitizeString(r.PathValue("id"))
	result, svcErr := h.collectionService.GetWorkflowStatus(flowID, tenantFromRequest(r))
	if svcErr != nil {
		handleServiceError(w, logger, svcErr)
		return
	}
	writeJSONResponse(w, logger, http.StatusOK, result)
}

// HandleAdvanceRequest handles the phase advancement request.
func (h *collectionHandler) HandleAdvanceRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CollectionHandler"))

	flowID := sysutils.SanitizeString(r.PathValue("id"))
	advanceRequest, err := sysutils.DecodeJSONBody[struct {
		Force bool `json:"force"`
	}](r)
	if err != nil {
		writeDecodeError(w, logger)
		return
	}

	result, svcErr := h.collectionService.Advance(flowID, tenantFromRequest(r), advanceRequest.Force)
	if svcErr != nil {
		handleServiceError(w, logger, svcErr)
		return
	}
	writeJSONResponse(w, logger, http.StatusOK, result)
}

// HandleGapListRequest handles the gap audit trail request.
func (h *collectionHandler) HandleGapListRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CollectionHandler"))

	flowID := sysutils.SanitizeString(r.PathValue("id"))
	gaps, svcErr := h.collectionService.ListGaps(flowID, tenantFromRequest(r))
	if svcErr != nil {
		handleServiceError(w, logger, svcErr)
		return
	}
	writeJSONResponse(w, logger, http.StatusOK, gaps)
}

// tenantFromRequest builds the tenant context from the request headers.
func tenantFromRequest(r *http.Request) model.TenantContext {
	return model.TenantContext{
		ClientAccountID: sysutils.SanitizeString(r.Header.Get(headerClientAccountID)),
		EngagementID:    sysutils.SanitizeString(r.Header.Get(headerEngagementID)),
		UserID:          sysutils.SanitizeString(r.Header.Get(headerUserID)),
	}
}

// writeDecodeError writes the standard undecodable-payload error response.
func writeDecodeError(w http.ResponseWriter, logger *log.Logger) {
	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(constants.APIErrorRequestJSONDecodeError); err != nil {
		logger.Error("Error encoding error response", log.Error(err))
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}

// writeJSONResponse writes a JSON response with the given status code.
func writeJSONResponse(w http.ResponseWriter, logger *log.Logger, statusCode int, payload interface{}) {
	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Error encoding response", log.Error(err))
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// handleServiceError writes a service error as an API error response.
func handleServiceError(w http.ResponseWriter, logger *log.Logger, svcErr *serviceerror.ServiceError) {
	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)

	errResp := apierror.ErrorResponse{
		Code:        svcErr.Code,
		Message:     svcErr.Error,
		Description: svcErr.ErrorDescription,
	}

	statusCode := http.StatusInternalServerError
	if svcErr.Type == serviceerror.ClientErrorType {
		statusCode = http.StatusBadRequest
		if svcErr.Code == constants.ErrorFlowNotFound.Code ||
			svcErr.Code == constants.ErrorQuestionnaireNotFound.Code {
			statusCode = http.StatusNotFound
		}
	}
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		logger.Error("Error encoding error response", log.Error(err))
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
