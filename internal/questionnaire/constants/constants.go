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

// Package constants defines the constants used by the questionnaire domain.
package constants

// CompletionStatus represents the lifecycle state of an adaptive questionnaire.
type CompletionStatus string

const (
	// CompletionStatusPending denotes a questionnaire awaiting its first submission.
	CompletionStatusPending CompletionStatus = "pending"
	// CompletionStatusInProgress denotes a questionnaire with saved partial answers.
	CompletionStatusInProgress CompletionStatus = "in_progress"
	// CompletionStatusCompleted denotes a fully submitted questionnaire.
	CompletionStatusCompleted CompletionStatus = "completed"
	// CompletionStatusFailed denotes a questionnaire whose generation failed.
	CompletionStatusFailed CompletionStatus = "failed"
	// CompletionStatusReady denotes a generated questionnaire awaiting input.
	CompletionStatusReady CompletionStatus = "ready"
)

// QuestionnaireType distinguishes the generation stages.
type QuestionnaireType string

const (
	// QuestionnaireTypeBootstrap is the first coarse-grained questionnaire of a flow.
	QuestionnaireTypeBootstrap QuestionnaireType = "bootstrap"
	// QuestionnaireTypeDetailed is a fine-grained per-asset questionnaire.
	QuestionnaireTypeDetailed QuestionnaireType = "detailed"
	// QuestionnaireTypeFollowup is a targeted follow-up questionnaire.
	QuestionnaireTypeFollowup QuestionnaireType = "followup"
)

// SaveType governs whether a submission finalizes the questionnaire.
type SaveType string

const (
	// SaveTypeProgress saves partial answers without completing the questionnaire.
	SaveTypeProgress SaveType = "save_progress"
	// SaveTypeComplete finalizes the questionnaire and triggers readiness evaluation.
	SaveTypeComplete SaveType = "submit_complete"
)

// GenerationReason records why a questionnaire generation ended without questions.
type GenerationReason string

const (
	// GenerationReasonNone denotes a normally generated questionnaire.
	GenerationReasonNone GenerationReason = ""
	// GenerationReasonNoGapsFound denotes generation that found nothing to ask.
	GenerationReasonNoGapsFound GenerationReason = "no_gaps_found"
	// GenerationReasonError denotes a genuine generation failure.
	GenerationReasonError GenerationReason = "generation_error"
)

// ValidationStatus represents the validation state of a recorded response.
type ValidationStatus string

const (
	// ValidationStatusPending denotes a response awaiting validation.
	ValidationStatusPending ValidationStatus = "pending"
	// ValidationStatusValidated denotes a validated response.
	ValidationStatusValidated ValidationStatus = "validated"
)

// Response value types derived from the submitted value's runtime shape.
const (
	// ResponseTypeBoolean is the response type for boolean values.
	ResponseTypeBoolean = "boolean"
	// ResponseTypeNumber is the response type for numeric values.
	ResponseTypeNumber = "number"
	// ResponseTypeObject is the response type for mapping values.
	ResponseTypeObject = "object"
	// ResponseTypeArray is the response type for sequence values.
	ResponseTypeArray = "array"
	// ResponseTypeText is the response type for everything else.
	ResponseTypeText = "text"
)

// CompositeFieldDelimiter separates an asset identifier prefix from the
// attribute name inside a composite field identifier.
const CompositeFieldDelimiter = "__"
