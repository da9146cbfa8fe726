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

	"github.com/migrata/compass/internal/asset/constants"
	"github.com/migrata/compass/internal/asset/model"
	dbmodel "github.com/migrata/compass/internal/system/database/model"
	"github.com/migrata/compass/internal/system/database/provider"
	"github.com/migrata/compass/internal/system/log"
)

const loggerComponentName = "AssetStore"

// AssetStoreInterface defines the persistence operations for assets.
type AssetStoreInterface interface {
	GetAssetByID(assetID string) (*model.Asset, error)
	GetAssetsByIDs(assetIDs []string) ([]model.Asset, error)
	UpdateCriticality(assetID, value string) error
	UpdateEnvironment(assetID, value string) error
	SetCustomAttribute(assetID, key, value string) error
	MarkAssessmentReady(assetIDs []string) error
}

// AssetStore is the implementation of AssetStoreInterface backed by the inventory database.
type AssetStore struct {
	DBProvider provider.DBProviderInterface
}

// NewAssetStore creates a new asset store instance.
func NewAssetStore() AssetStoreInterface {
	return &AssetStore{
		DBProvider: provider.GetDBProvider(),
	}
}

// GetAssetByID returns the asset with the given ID, or nil when absent.
func (s *AssetStore) GetAssetByID(assetID string) (*model.Asset, error) {
	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameInventory)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetAssetByID, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return buildAssetFromResultRow(results[0])
}

// GetAssetsByIDs returns the assets matching the given IDs. Missing IDs are
// simply absent from the result; the caller decides whether that matters.
func (s *AssetStore) GetAssetsByIDs(assetIDs []string) ([]model.Asset, error) {
	if len(assetIDs) == 0 {
		return []model.Asset{}, nil
	}

	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameInventory)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	query, args := buildGetAssetsByIDsQuery(assetIDs)
	results, err := dbClient.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	assets := make([]model.Asset, 0, len(results))
	for _, row := range results {
		a, err := buildAssetFromResultRow(row)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *a)
	}
	return assets, nil
}

// UpdateCriticality sets the asset's dedicated criticality column.
func (s *AssetStore) UpdateCriticality(assetID, value string) error {
	return s.executeUpdate(QueryUpdateAssetCriticality, assetID, value)
}

// UpdateEnvironment sets the asset's dedicated environment column.
func (s *AssetStore) UpdateEnvironment(assetID, value string) error {
	return s.executeUpdate(QueryUpdateAssetEnvironment, assetID, value)
}

// SetCustomAttribute merges a single key into the asset's custom attribute
// document and writes the document back.
func (s *AssetStore) SetCustomAttribute(assetID, key, value string) error {
	asset, err := s.GetAssetByID(assetID)
	if err != nil {
		return err
	}
	if asset == nil {
		return fmt.Errorf("asset %s not found", assetID)
	}

	attrs := asset.CustomAttributes
	if attrs == nil {
		attrs = make(map[string]string)
	}
	attrs[key] = value

	serialized, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("failed to serialize custom attributes: %w", err)
	}
	return s.executeUpdate(QueryUpdateAssetCustomAttributes, assetID, string(serialized))
}

// MarkAssessmentReady bulk-updates the given assets to assessment-ready and
// flags them ready for 6R strategy planning.
func (s *AssetStore) MarkAssessmentReady(assetIDs []string) error {
	if len(assetIDs) == 0 {
		return nil
	}

	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameInventory)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	query, args := buildMarkAssessmentReadyQuery(assetIDs)
	args[0] = string(constants.AssessmentReadinessReady)

	rowsAffected, err := dbClient.Execute(query, args...)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Debug("Marked assets assessment ready", log.Int("requested", len(assetIDs)),
		log.Int("updated", int(rowsAffected)))
	return nil
}

// executeUpdate runs a two-argument asset update query.
func (s *AssetStore) executeUpdate(query dbmodel.DBQuery, assetID, value string) error {
	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameInventory)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	if _, err := dbClient.Execute(query, assetID, value); err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	return nil
}

// buildAssetFromResultRow builds an Asset from a database result row.
func buildAssetFromResultRow(row map[string]interface{}) (*model.Asset, error) {
	assetID, ok := row["asset_id"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse asset_id as string")
	}

	a := &model.Asset{
		ID:                  assetID,
		Name:                parseOptionalString(row["name"]),
		Criticality:         parseOptionalString(row["criticality"]),
		Environment:         parseOptionalString(row["environment"]),
		AssessmentReadiness: constants.AssessmentReadiness(parseOptionalString(row["assessment_readiness"])),
	}

	if raw := parseOptionalString(row["custom_attributes"]); raw != "" {
		attrs := make(map[string]string)
		if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
			return nil, fmt.Errorf("failed to parse custom attributes for asset %s: %w", assetID, err)
		}
		a.CustomAttributes = attrs
	}

	switch v := row["sixr_ready"].(type) {
	case bool:
		a.SixRReady = v
	case int64:
		a.SixRReady = v != 0
	}
	return a, nil
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
