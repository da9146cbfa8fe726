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
	"time"

	"github.com/migrata/compass/internal/gap/model"
	"github.com/migrata/compass/internal/gap/store"
	dbmodel "github.com/migrata/compass/internal/system/database/model"
	"github.com/migrata/compass/internal/system/log"
)

// GapResolverInterface marks indexed gaps resolved when matching responses arrive.
type GapResolverInterface interface {
	Resolve(tx dbmodel.TxInterface, index *GapIndex, answers map[string]any,
		resolvedAt time.Time) ([]model.CollectionDataGap, error)
}

// gapResolver is the implementation of GapResolverInterface.
type gapResolver struct {
	gapStore store.GapStoreInterface
}

// NewGapResolver creates a new gap resolver backed by the given store.
func NewGapResolver(gapStore store.GapStoreInterface) GapResolverInterface {
	return &gapResolver{gapStore: gapStore}
}

// Resolve flips every indexed gap matched by a submitted answer to resolved and
// returns the resolved gaps. The index is built from pending-only gaps, so a
// field resolved by an earlier submission is absent here and resolves nothing.
func (r *gapResolver) Resolve(tx dbmodel.TxInterface, index *GapIndex, answers map[string]any,
	resolvedAt time.Time) ([]model.CollectionDataGap, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "GapResolver"))

	resolved := make([]model.CollectionDataGap, 0)
	for fieldID, value := range answers {
		if !AnswerableField(fieldID, value) {
			continue
		}

		g, ok := index.Lookup(fieldID)
		if !ok {
			continue
		}

		if err := r.gapStore.ResolveGapTx(tx, g.ID, resolvedAt, model.ResolvedByManualSubmission); err != nil {
			return nil, err
		}

		g.ResolutionStatus = model.ResolutionStatusResolved
		g.ResolvedAt = &resolvedAt
		g.ResolvedBy = model.ResolvedByManualSubmission
		resolved = append(resolved, *g)

		logger.Debug("Resolved data gap",
			log.String(log.LoggerKeyGapID, g.ID),
			log.String("fieldName", g.FieldName))
	}

	return resolved, nil
}
