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

package gap

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/migrata/compass/internal/gap/model"
	dbmodel "github.com/migrata/compass/internal/system/database/model"
	"github.com/migrata/compass/tests/mocks/databasemock"
)

type mockGapStore struct {
	MockGetPendingGapsByFlow func(flowID string) ([]model.CollectionDataGap, error)
	MockGetGapsByFlow        func(flowID string) ([]model.CollectionDataGap, error)
	MockResolveGapTx         func(tx dbmodel.TxInterface, gapID string, resolvedAt time.Time,
		resolvedBy string) error
	MockCreateGap func(gap model.CollectionDataGap) error

	ResolveGapTxCalls []struct {
		GapID      string
		ResolvedBy string
	}
}

func (m *mockGapStore) GetPendingGapsByFlow(flowID string) ([]model.CollectionDataGap, error) {
	if m.MockGetPendingGapsByFlow != nil {
		return m.MockGetPendingGapsByFlow(flowID)
	}
	return nil, nil
}

func (m *mockGapStore) GetGapsByFlow(flowID string) ([]model.CollectionDataGap, error) {
	if m.MockGetGapsByFlow != nil {
		return m.MockGetGapsByFlow(flowID)
	}
	return nil, nil
}

func (m *mockGapStore) ResolveGapTx(tx dbmodel.TxInterface, gapID string, resolvedAt time.Time,
	resolvedBy string) error {
	m.ResolveGapTxCalls = append(m.ResolveGapTxCalls, struct {
		GapID      string
		ResolvedBy string
	}{gapID, resolvedBy})

	if m.MockResolveGapTx != nil {
		return m.MockResolveGapTx(tx, gapID, resolvedAt, resolvedBy)
	}
	return nil
}

func (m *mockGapStore) CreateGap(gap model.CollectionDataGap) error {
	if m.MockCreateGap != nil {
		return m.MockCreateGap(gap)
	}
	return nil
}

type GapResolverTestSuite struct {
	suite.Suite
	store *mockGapStore
	tx    *databasemock.MockTx
}

func TestGapResolverSuite(t *testing.T) {
	suite.Run(t, new(GapResolverTestSuite))
}

func (suite *GapResolverTestSuite) SetupTest() {
	suite.store = &mockGapStore{}
	suite.tx = &databasemock.MockTx{}
}

func (suite *GapResolverTestSuite) TestResolveMatchingAnswer() {
	resolvedAt := time.Now().UTC()
	index := NewGapIndex([]model.CollectionDataGap{
		{ID: "gap-1", FlowID: "flow-1", FieldName: "region", ResolutionStatus: model.ResolutionStatusPending},
	})
	resolver := NewGapResolver(suite.store)

	resolved, err := resolver.Resolve(suite.tx, index, map[string]any{"region": "us-east-1"}, resolvedAt)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resolved, 1)
	assert.Equal(suite.T(), "gap-1", resolved[0].ID)
	assert.Equal(suite.T(), model.ResolutionStatusResolved, resolved[0].ResolutionStatus)
	assert.Equal(suite.T(), model.ResolvedByManualSubmission, resolved[0].ResolvedBy)
	assert.NotNil(suite.T(), resolved[0].ResolvedAt)
	assert.Equal(suite.T(), resolvedAt, *resolved[0].ResolvedAt)

	assert.Len(suite.T(), suite.store.ResolveGapTxCalls, 1)
	assert.Equal(suite.T(), "gap-1", suite.store.ResolveGapTxCalls[0].GapID)
	assert.Equal(suite.T(), model.ResolvedByManualSubmission, suite.store.ResolveGapTxCalls[0].ResolvedBy)
}

func (suite *GapResolverTestSuite) TestResolveSkipsUnanswerableFields() {
	index := NewGapIndex([]model.CollectionDataGap{
		{ID: "gap-1", FlowID: "flow-1", FieldName: "region", ResolutionStatus: model.ResolutionStatusPending},
	})
	resolver := NewGapResolver(suite.store)

	resolved, err := resolver.Resolve(suite.tx, index, map[string]any{
		"region": "",
		"":       "value",
	}, time.Now().UTC())

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), resolved)
	assert.Empty(suite.T(), suite.store.ResolveGapTxCalls)
}

func (suite *GapResolverTestSuite) TestResolveIgnoresUnmatchedFields() {
	index := NewGapIndex([]model.CollectionDataGap{
		{ID: "gap-1", FlowID: "flow-1", FieldName: "region", ResolutionStatus: model.ResolutionStatusPending},
	})
	resolver := NewGapResolver(suite.store)

	resolved, err := resolver.Resolve(suite.tx, index, map[string]any{
		"criticality": "high",
	}, time.Now().UTC())

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), resolved)
}

func (suite *GapResolverTestSuite) TestResolveIdempotentAcrossSubmissions() {
	// The second submission rebuilds the index from pending gaps only, so an
	// already-resolved field can no longer match anything.
	resolver := NewGapResolver(suite.store)
	answers := map[string]any{"region": "us-east-1"}

	first := NewGapIndex([]model.CollectionDataGap{
		{ID: "gap-1", FlowID: "flow-1", FieldName: "region", ResolutionStatus: model.ResolutionStatusPending},
	})
	resolved, err := resolver.Resolve(suite.tx, first, answers, time.Now().UTC())
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resolved, 1)

	second := NewGapIndex([]model.CollectionDataGap{})
	resolved, err = resolver.Resolve(suite.tx, second, answers, time.Now().UTC())
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), resolved)
	assert.Len(suite.T(), suite.store.ResolveGapTxCalls, 1)
}

func (suite *GapResolverTestSuite) TestResolveStoreError() {
	index := NewGapIndex([]model.CollectionDataGap{
		{ID: "gap-1", FlowID: "flow-1", FieldName: "region", ResolutionStatus: model.ResolutionStatusPending},
	})
	suite.store.MockResolveGapTx = func(_ dbmodel.TxInterface, _ string, _ time.Time, _ string) error {
		return errors.New("database unavailable")
	}
	resolver := NewGapResolver(suite.store)

	resolved, err := resolver.Resolve(suite.tx, index, map[string]any{"region": "us-east-1"},
		time.Now().UTC())

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), resolved)
}
