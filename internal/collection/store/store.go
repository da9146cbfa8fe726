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

package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/migrata/compass/internal/collection/constants"
	"github.com/migrata/compass/internal/collection/model"
	"github.com/migrata/compass/internal/system/database/provider"
	"github.com/migrata/compass/internal/system/log"
)

const loggerComponentName = "CollectionFlowStore"

// FlowStoreInterface defines the persistence operations for collection flow state.
type FlowStoreInterface interface {
	CreateFlowState(state model.CollectionFlowState) error
	GetFlowState(flowID string, tenant model.TenantContext) (*model.CollectionFlowState, error)
	UpdateFlowState(state model.CollectionFlowState) error
	DeleteFlowState(flowID string, tenant model.TenantContext) error
}

// FlowStore is the implementation of FlowStoreInterface backed by the runtime database.
type FlowStore struct {
	DBProvider provider.DBProviderInterface
}

// NewFlowStore creates a new flow store instance.
func NewFlowStore() FlowStoreInterface {
	return &FlowStore{
		DBProvider: provider.GetDBProvider(),
	}
}

// CreateFlowState persists a new flow state record.
func (s *FlowStore) CreateFlowState(state model.CollectionFlowState) error {
	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameRuntime)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	docs, err := serializeFlowDocuments(&state)
	if err != nil {
		return err
	}

	_, err = dbClient.Execute(QueryCreateFlowState, state.FlowID, state.Tenant.ClientAccountID,
		state.Tenant.EngagementID, state.Tenant.UserID, string(state.Status),
		string(state.CurrentPhase), docs.phaseState, docs.phaseResults, docs.questionnaires,
		docs.selectedAssetIDs, state.AssessmentReady, docs.appsReady, docs.errors, docs.warnings,
		state.CreatedAt, state.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create flow state: %w", err)
	}
	return nil
}

// GetFlowState returns the flow state scoped to the tenant, or nil when absent.
func (s *FlowStore) GetFlowState(flowID string, tenant model.TenantContext) (
	*model.CollectionFlowState, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameRuntime)
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetFlowState, flowID, tenant.ClientAccountID,
		tenant.EngagementID)
	if err != nil {
		logger.Error("Failed to execute query", log.Error(err))
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return buildFlowStateFromResultRow(results[0])
}

// UpdateFlowState persists the mutated flow state.
func (s *FlowStore) UpdateFlowState(state model.CollectionFlowState) error {
	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameRuntime)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	docs, err := serializeFlowDocuments(&state)
	if err != nil {
		return err
	}

	rowsAffected, err := dbClient.Execute(QueryUpdateFlowState, state.FlowID,
		state.Tenant.ClientAccountID, state.Tenant.EngagementID, string(state.Status),
		string(state.CurrentPhase), docs.phaseState, docs.phaseResults, docs.questionnaires,
		docs.selectedAssetIDs, state.AssessmentReady, docs.appsReady, docs.errors, docs.warnings,
		state.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update flow state: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("flow state %s not found for update", state.FlowID)
	}
	return nil
}

// DeleteFlowState deletes the flow state scoped to the tenant.
func (s *FlowStore) DeleteFlowState(flowID string, tenant model.TenantContext) error {
	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameRuntime)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	if _, err := dbClient.Execute(QueryDeleteFlowState, flowID, tenant.ClientAccountID,
		tenant.EngagementID); err != nil {
		return fmt.Errorf("failed to delete flow state: %w", err)
	}
	return nil
}

// flowDocuments holds the JSON-serialized sub-documents of a flow state row.
type flowDocuments struct {
	phaseState       string
	phaseResults     string
	questionnaires   string
	selectedAssetIDs string
	appsReady        string
	errors           string
	warnings         string
}

// serializeFlowDocuments serializes the structured parts of the flow state.
func serializeFlowDocuments(state *model.CollectionFlowState) (*flowDocuments, error) {
	phaseState, err := json.Marshal(state.Progress)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workflow progress: %w", err)
	}
	phaseResults, err := json.Marshal(state.PhaseResults)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize phase results: %w", err)
	}
	questionnaires, err := json.Marshal(state.Questionnaires)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize questionnaire refs: %w", err)
	}
	selectedAssetIDs, err := json.Marshal(state.SelectedAssetIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize selected asset IDs: %w", err)
	}
	appsReady, err := json.Marshal(state.AppsReadyForAssessment)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize ready app list: %w", err)
	}
	errorList, err := json.Marshal(state.Errors)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize error list: %w", err)
	}
	warningList, err := json.Marshal(state.Warnings)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize warning list: %w", err)
	}

	return &flowDocuments{
		phaseState:       string(phaseState),
		phaseResults:     string(phaseResults),
		questionnaires:   string(questionnaires),
		selectedAssetIDs: string(selectedAssetIDs),
		appsReady:        string(appsReady),
		errors:           string(errorList),
		warnings:         string(warningList),
	}, nil
}

// buildFlowStateFromResultRow builds a CollectionFlowState from a database result row.
func buildFlowStateFromResultRow(row map[string]interface{}) (*model.CollectionFlowState, error) {
	flowID, ok := row["flow_id"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse flow_id as string")
	}

	state := &model.CollectionFlowState{
		FlowID: flowID,
		Tenant: model.TenantContext{
			ClientAccountID: parseOptionalString(row["client_account_id"]),
			EngagementID:    parseOptionalString(row["engagement_id"]),
			UserID:          parseOptionalString(row["user_id"]),
		},
		Status:       constants.FlowStatus(parseOptionalString(row["status"])),
		CurrentPhase: constants.CollectionPhase(parseOptionalString(row["current_phase"])),
	}

	if raw := parseOptionalString(row["phase_state"]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &state.Progress); err != nil {
			return nil, fmt.Errorf("failed to parse workflow progress for flow %s: %w", flowID, err)
		}
	}
	if raw := parseOptionalString(row["phase_results"]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &state.PhaseResults); err != nil {
			return nil, fmt.Errorf("failed to parse phase results for flow %s: %w", flowID, err)
		}
	}
	if raw := parseOptionalString(row["questionnaires"]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &state.Questionnaires); err != nil {
			return nil, fmt.Errorf("failed to parse questionnaire refs for flow %s: %w", flowID, err)
		}
	}
	if raw := parseOptionalString(row["selected_asset_ids"]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &state.SelectedAssetIDs); err != nil {
			return nil, fmt.Errorf("failed to parse selected asset IDs for flow %s: %w", flowID, err)
		}
	}
	if raw := parseOptionalString(row["apps_ready"]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &state.AppsReadyForAssessment); err != nil {
			return nil, fmt.Errorf("failed to parse ready app list for flow %s: %w", flowID, err)
		}
	}
	if raw := parseOptionalString(row["errors"]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &state.Errors); err != nil {
			return nil, fmt.Errorf("failed to parse error list for flow %s: %w", flowID, err)
		}
	}
	if raw := parseOptionalString(row["warnings"]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &state.Warnings); err != nil {
			return nil, fmt.Errorf("failed to parse warning list for flow %s: %w", flowID, err)
		}
	}

	switch v := row["assessment_ready"].(type) {
	case bool:
		state.AssessmentReady = v
	case int64:
		state.AssessmentReady = v != 0
	}
	if t, ok := row["created_at"].(time.Time); ok {
		state.CreatedAt = t
	}
	if t, ok := row["updated_at"].(time.Time); ok {
		state.UpdatedAt = t
	}
	return state, nil
}

// parseOptionalString safely parses an optional string field from the database row.
func parseOptionalString(value interface{}) string {
	if value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}
	return ""
}
