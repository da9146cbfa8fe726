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
	"github.com/migrata/compass/internal/gap/model"
	"github.com/migrata/compass/internal/gap/store"
)

// GapServiceInterface exposes gap lookup operations to the collection engine.
type GapServiceInterface interface {
	// LoadPendingIndex builds a field-name index over the flow's pending gaps.
	LoadPendingIndex(flowID string) (*GapIndex, error)
	// ListGapsByFlow returns all gaps recorded for the flow, resolved included.
	ListGapsByFlow(flowID string) ([]model.CollectionDataGap, error)
}

// gapService is the implementation of GapServiceInterface.
type gapService struct {
	gapStore store.GapStoreInterface
}

// NewGapService creates a new gap service backed by the given store.
func NewGapService(gapStore store.GapStoreInterface) GapServiceInterface {
	return &gapService{gapStore: gapStore}
}

// LoadPendingIndex builds a field-name index over the flow's pending gaps.
func (s *gapService) LoadPendingIndex(flowID string) (*GapIndex, error) {
	gaps, err := s.gapStore.GetPendingGapsByFlow(flowID)
	if err != nil {
		return nil, err
	}
	return NewGapIndex(gaps), nil
}

// ListGapsByFlow returns all gaps recorded for the flow.
func (s *gapService) ListGapsByFlow(flowID string) ([]model.CollectionDataGap, error) {
	return s.gapStore.GetGapsByFlow(flowID)
}
