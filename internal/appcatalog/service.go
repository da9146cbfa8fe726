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

package appcatalog

import (
	"fmt"

	"github.com/migrata/compass/internal/system/database/provider"
	"github.com/migrata/compass/internal/system/log"
	sysutils "github.com/migrata/compass/internal/system/utils"
)

const loggerComponentName = "CanonicalAppService"

// CanonicalAppServiceInterface matches raw application names against the
// canonical catalog. Consumers treat failures as non-fatal.
type CanonicalAppServiceInterface interface {
	MatchApplications(names []string) (*IntegrationSummary, error)
}

// canonicalAppService is the implementation of CanonicalAppServiceInterface
// backed by the inventory database.
type canonicalAppService struct {
	dbProvider provider.DBProviderInterface
}

// NewCanonicalAppService creates a new canonical application service.
func NewCanonicalAppService() CanonicalAppServiceInterface {
	return &canonicalAppService{
		dbProvider: provider.GetDBProvider(),
	}
}

// MatchApplications resolves each raw name to its canonical catalog entry.
// Unmatched names stay in the summary with Matched false.
func (s *canonicalAppService) MatchApplications(names []string) (*IntegrationSummary, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.dbProvider.GetDBClient(provider.DBNameInventory)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	summary := &IntegrationSummary{}
	for _, name := range names {
		if sysutils.IsBlank(name) {
			continue
		}
		summary.Attempted++

		match := CanonicalMatch{RawName: name}
		results, err := dbClient.Query(QueryMatchCanonicalApp, name)
		if err != nil {
			return nil, fmt.Errorf("failed to match application %q: %w", name, err)
		}
		if len(results) > 0 {
			if appID, ok := results[0]["app_id"].(string); ok {
				match.CanonicalID = appID
				match.Matched = true
			}
			if canonicalName, ok := results[0]["name"].(string); ok {
				match.CanonicalName = canonicalName
			}
		}

		if match.Matched {
			summary.Matched++
		} else {
			logger.Debug("No canonical match for application", log.String("name", name))
		}
		summary.Matches = append(summary.Matches, match)
	}

	return summary, nil
}
