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

package constants

import (
	"github.com/migrata/compass/internal/system/error/apierror"
	"github.com/migrata/compass/internal/system/error/serviceerror"
)

// Client error structs

// APIErrorRequestJSONDecodeError is the API error for undecodable request payloads.
var APIErrorRequestJSONDecodeError = apierror.ErrorResponse{
	Code:        "CFS-60001",
	Message:     "Invalid request payload",
	Description: "Failed to decode request payload",
}

// ErrorInvalidTenantContext is the error returned when the tenant context is incomplete.
var ErrorInvalidTenantContext = serviceerror.ServiceError{
	Code:             "CFS-60002",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid tenant context",
	ErrorDescription: "Client account ID, engagement ID and user ID are required",
}

// ErrorInvalidFlowID is the error returned when an invalid flow ID is provided.
var ErrorInvalidFlowID = serviceerror.ServiceError{
	Code:             "CFS-60003",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "Invalid flow ID provided in the request",
}

// ErrorFlowNotFound is the error returned when the flow does not exist.
var ErrorFlowNotFound = serviceerror.ServiceError{
	Code:             "CFS-60004",
	Type:             serviceerror.ClientErrorType,
	Error:            "Flow not found",
	ErrorDescription: "The collection flow with the specified ID does not exist",
}

// ErrorInvalidSaveType is the error returned when an unknown save type is provided.
var ErrorInvalidSaveType = serviceerror.ServiceError{
	Code:             "CFS-60005",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "Save type must be save_progress or submit_complete",
}

// ErrorPhaseNotReady is the error returned when the flow does not satisfy the
// prerequisites of the next phase and force was not requested.
var ErrorPhaseNotReady = serviceerror.ServiceError{
	Code:             "CFS-60006",
	Type:             serviceerror.ClientErrorType,
	Error:            "Phase not ready",
	ErrorDescription: "The flow does not satisfy the prerequisites for the next phase",
}

// ErrorNoNextPhase is the error returned when the flow is already in its terminal phase.
var ErrorNoNextPhase = serviceerror.ServiceError{
	Code:             "CFS-60007",
	Type:             serviceerror.ClientErrorType,
	Error:            "No next phase",
	ErrorDescription: "The flow is already in its terminal phase",
}

// ErrorPhaseLoopDetected is the error returned when a phase exceeds its
// iteration ceiling.
var ErrorPhaseLoopDetected = serviceerror.ServiceError{
	Code:             "CFS-60008",
	Type:             serviceerror.ClientErrorType,
	Error:            "Phase loop detected",
	ErrorDescription: "The phase exceeded its maximum number of iterations",
}

// ErrorQuestionnaireNotFound is the error returned when the submitted
// questionnaire does not exist for the flow.
var ErrorQuestionnaireNotFound = serviceerror.ServiceError{
	Code:             "CFS-60009",
	Type:             serviceerror.ClientErrorType,
	Error:            "Questionnaire not found",
	ErrorDescription: "The questionnaire with the specified ID does not exist for the flow",
}

// Server error structs

// ErrorInternalServerError is the generic server error for the collection domain.
var ErrorInternalServerError = serviceerror.ServiceError{
	Code:             "CFS-65001",
	Type:             serviceerror.ServerErrorType,
	Error:            "Internal server error",
	ErrorDescription: "An unexpected error occurred while processing the request",
}

// ErrorFlowStorePersistence is the error returned when flow state cannot be persisted.
var ErrorFlowStorePersistence = serviceerror.ServiceError{
	Code:             "CFS-65002",
	Type:             serviceerror.ServerErrorType,
	Error:            "Persistence failure",
	ErrorDescription: "Failed to persist the collection flow state",
}

// ErrorSubmissionPersistence is the error returned when the submission unit of
// work cannot be committed.
var ErrorSubmissionPersistence = serviceerror.ServiceError{
	Code:             "CFS-65003",
	Type:             serviceerror.ServerErrorType,
	Error:            "Persistence failure",
	ErrorDescription: "Failed to persist the submission",
}
