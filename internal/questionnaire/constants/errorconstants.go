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
	"github.com/migrata/compass/internal/system/error/serviceerror"
)

// Client errors

// ErrorInvalidQuestionnaireID is the error returned when an invalid questionnaire ID is provided.
var ErrorInvalidQuestionnaireID = serviceerror.ServiceError{
	Code:             "QNR-60001",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "Invalid questionnaire ID provided in the request",
}

// ErrorQuestionnaireNotFound is the error returned when the questionnaire is not found.
var ErrorQuestionnaireNotFound = serviceerror.ServiceError{
	Code:             "QNR-60002",
	Type:             serviceerror.ClientErrorType,
	Error:            "Questionnaire not found",
	ErrorDescription: "The questionnaire with the specified ID does not exist for the flow",
}

// Server errors

// ErrorInternalServerError is the generic server error for the questionnaire domain.
var ErrorInternalServerError = serviceerror.ServiceError{
	Code:             "QNR-65001",
	Type:             serviceerror.ServerErrorType,
	Error:            "Internal server error",
	ErrorDescription: "An unexpected error occurred while processing the questionnaire request",
}
