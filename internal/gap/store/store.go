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
	"fmt"
	"time"

	"github.com/migrata/compass/internal/gap/model"
	dbmodel "github.com/migrata/compass/internal/system/database/model"
	"github.com/migrata/compass/internal/system/database/provider"
	"github.com/migrata/compass/internal/system/log"
)

const loggerComponentName = "GapStore"

// GapStoreInterface defines the persistence operations for collection data gaps.
type GapStoreInterface interface {
	GetPendingGapsByFlow(flowID string) ([]model.CollectionDataGap, error)
	GetGapsByFlow(flowID string) ([]model.CollectionDataGap, error)
	ResolveGapTx(tx dbmodel.TxInterface, gapID string, resolvedAt time.Time, resolvedBy string) error
	CreateGap(gap model.CollectionDataGap) error
}

// GapStore is the implementation of GapStoreInterface backed by the inventory database.
type GapStore struct {
	DBProvider provider.DBProviderInterface
}

// NewGapStore creates a new gap store instance.
func NewGapStore() GapStoreInterface {
	return &GapStore{
		DBProvider: provider.GetDBProvider(),
	}
}

// GetPendingGapsByFlow returns the pending gaps for the given flow.
func (s *GapStore) GetPendingGapsByFlow(flowID string) ([]model.CollectionDataGap, error) {
	return s.queryGaps(QueryGetPendingGapsByFlow, flowID)
}

// GetGapsByFlow returns all gaps recorded for the given flow.
func (s *GapStore) GetGapsByFlow(flowID string) ([]model.CollectionDataGap, error) {
	return s.queryGaps(QueryGetGapsByFlow, flowID)
}

// ResolveGapTx marks the gap resolved within the given transaction.
func (s *GapStore) ResolveGapTx(tx dbmodel.TxInterface, gapID string, resolvedAt time.Time,
	resolvedBy string) error {
	if _, err := tx.ExecQuery(QueryResolveGap, gapID, resolvedAt, resolvedBy); err != nil {
		return fmt.Errorf("failed to resolve gap %s: %w", gapID, err)
	}
	return nil
}

// CreateGap persists a new data gap record.
func (s *GapStore) CreateGap(gap model.CollectionDataGap) error {
	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameInventory)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	_, err = dbClient.Execute(QueryCreateGap, gap.ID, gap.FlowID, nullableString(gap.AssetID),
		gap.FieldName, nullableString(gap.Description), string(gap.ResolutionStatus), gap.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create gap: %w", err)
	}
	return nil
}

// queryGaps executes a gap list query and converts the rows.
func (s *GapStore) queryGaps(query dbmodel.DBQuery, flowID string) ([]model.CollectionDataGap, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameInventory)
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(query, flowID)
	if err != nil {
		logger.Error("Failed to execute query", log.Error(err))
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	gaps := make([]model.CollectionDataGap, 0, len(results))
	for _, row := range results {
		g, err := buildGapFromResultRow(row)
		if err != nil {
			return nil, err
		}
		gaps = append(gaps, *g)
	}
	return gaps, nil
}

// buildGapFromResultRow builds a CollectionDataGap from a database result row.
func buildGapFromResultRow(row map[string]interface{}) (*model.CollectionDataGap, error) {
	gapID, ok := row["gap_id"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse gap_id as string")
	}
	flowID, ok := row["flow_id"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse flow_id as string")
	}

	g := &model.CollectionDataGap{
		ID:               gapID,
		FlowID:           flowID,
		AssetID:          parseOptionalString(row["asset_id"]),
		FieldName:        parseOptionalString(row["field_name"]),
		Description:      parseOptionalString(row["description"]),
		ResolutionStatus: model.ResolutionStatus(parseOptionalString(row["resolution_status"])),
		ResolvedBy:       parseOptionalString(row["resolved_by"]),
	}
	if t, ok := row["resolved_at"].(time.Time); ok {
		g.ResolvedAt = &t
	}
	if t, ok := row["created_at"].(time.Time); ok {
		g.CreatedAt = t
	}
	return g, nil
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

// nullableString converts an empty string to nil for nullable columns.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
