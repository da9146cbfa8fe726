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

package asset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/migrata/compass/internal/asset/model"
	"github.com/migrata/compass/internal/system/config"
)

const testAssetID = "3fa85f64-5717-4562-b3fc-2c963f66afa6"

type mockAssetStore struct {
	criticalityErr error
	environmentErr error
	customErr      error

	CriticalityCalls []struct{ AssetID, Value string }
	EnvironmentCalls []struct{ AssetID, Value string }
	CustomCalls      []struct{ AssetID, Key, Value string }
}

func (m *mockAssetStore) GetAssetByID(assetID string) (*model.Asset, error) {
	return nil, nil
}

func (m *mockAssetStore) GetAssetsByIDs(assetIDs []string) ([]model.Asset, error) {
	return nil, nil
}

func (m *mockAssetStore) UpdateCriticality(assetID, value string) error {
	m.CriticalityCalls = append(m.CriticalityCalls, struct{ AssetID, Value string }{assetID, value})
	return m.criticalityErr
}

func (m *mockAssetStore) UpdateEnvironment(assetID, value string) error {
	m.EnvironmentCalls = append(m.EnvironmentCalls, struct{ AssetID, Value string }{assetID, value})
	return m.environmentErr
}

func (m *mockAssetStore) SetCustomAttribute(assetID, key, value string) error {
	m.CustomCalls = append(m.CustomCalls, struct{ AssetID, Key, Value string }{assetID, key, value})
	return m.customErr
}

func (m *mockAssetStore) MarkAssessmentReady(assetIDs []string) error {
	return nil
}

type WritebackTestSuite struct {
	suite.Suite
	store     *mockAssetStore
	writeback WritebackInterface
}

func TestWritebackSuite(t *testing.T) {
	suite.Run(t, new(WritebackTestSuite))
}

func (suite *WritebackTestSuite) SetupTest() {
	config.ResetCompassRuntime()
	cfg := &config.Config{}
	// Keep retries tight so failure paths return quickly.
	cfg.Collection.Writeback.MaxRetries = 1
	cfg.Collection.Writeback.InitialDelayMs = 1
	err := config.InitializeCompassRuntime("", cfg)
	assert.NoError(suite.T(), err)

	suite.store = &mockAssetStore{}
	suite.writeback = NewWriteback(suite.store)
}

func (suite *WritebackTestSuite) TearDownTest() {
	config.ResetCompassRuntime()
}

func (suite *WritebackTestSuite) TestApplyRoutesWellKnownAttributes() {
	result := suite.writeback.Apply([]WritebackItem{
		{GapID: "gap-1", AssetID: testAssetID, Attribute: "business_criticality", Value: "high"},
		{GapID: "gap-2", AssetID: testAssetID, Attribute: "environment", Value: "production"},
	})

	assert.Equal(suite.T(), 2, result.Applied)
	assert.Empty(suite.T(), result.Failed)
	assert.Len(suite.T(), suite.store.CriticalityCalls, 1)
	assert.Equal(suite.T(), "high", suite.store.CriticalityCalls[0].Value)
	assert.Len(suite.T(), suite.store.EnvironmentCalls, 1)
	assert.Equal(suite.T(), "production", suite.store.EnvironmentCalls[0].Value)
	assert.Empty(suite.T(), suite.store.CustomCalls)
}

func (suite *WritebackTestSuite) TestApplyRoutesCustomAttribute() {
	result := suite.writeback.Apply([]WritebackItem{
		{GapID: "gap-1", AssetID: testAssetID, Attribute: "region", Value: "us-east-1"},
	})

	assert.Equal(suite.T(), 1, result.Applied)
	assert.Len(suite.T(), suite.store.CustomCalls, 1)
	assert.Equal(suite.T(), "region", suite.store.CustomCalls[0].Key)
	assert.Equal(suite.T(), "us-east-1", suite.store.CustomCalls[0].Value)
}

func (suite *WritebackTestSuite) TestApplySkipsItemsWithoutAssetReference() {
	result := suite.writeback.Apply([]WritebackItem{
		{GapID: "gap-1", AssetID: "", Attribute: "region", Value: "us-east-1"},
	})

	assert.Equal(suite.T(), 0, result.Applied)
	assert.Len(suite.T(), result.Failed, 1)
	assert.Equal(suite.T(), "gap-1", result.Failed[0].GapID)
	assert.Contains(suite.T(), result.Failed[0].Reason, "no resolvable asset reference")
	assert.Empty(suite.T(), suite.store.CustomCalls)
}

func (suite *WritebackTestSuite) TestApplyRetriesBeforeFailing() {
	suite.store.customErr = errors.New("deadlock detected")

	result := suite.writeback.Apply([]WritebackItem{
		{GapID: "gap-1", AssetID: testAssetID, Attribute: "region", Value: "us-east-1"},
	})

	assert.Equal(suite.T(), 0, result.Applied)
	assert.Len(suite.T(), result.Failed, 1)
	assert.Equal(suite.T(), testAssetID, result.Failed[0].AssetID)
	// One initial attempt plus the configured retry.
	assert.Len(suite.T(), suite.store.CustomCalls, 2)
}

func (suite *WritebackTestSuite) TestApplyContinuesPastFailures() {
	suite.store.criticalityErr = errors.New("update failed")

	result := suite.writeback.Apply([]WritebackItem{
		{GapID: "gap-1", AssetID: testAssetID, Attribute: "business_criticality", Value: "high"},
		{GapID: "gap-2", AssetID: testAssetID, Attribute: "environment", Value: "production"},
	})

	assert.Equal(suite.T(), 1, result.Applied)
	assert.Len(suite.T(), result.Failed, 1)
	assert.Equal(suite.T(), "gap-1", result.Failed[0].GapID)
	assert.Len(suite.T(), suite.store.EnvironmentCalls, 1)
}
