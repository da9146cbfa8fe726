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

// Package appcatalog provides canonical application matching for the reviewing
// integration step of collection flows.
package appcatalog

// CanonicalMatch pairs a raw application name with its canonical catalog entry.
type CanonicalMatch struct {
	RawName       string `json:"raw_name"`
	CanonicalID   string `json:"canonical_id,omitempty"`
	CanonicalName string `json:"canonical_name,omitempty"`
	Matched       bool   `json:"matched"`
}

// IntegrationSummary aggregates the outcome of the canonical matching pass.
type IntegrationSummary struct {
	Attempted int              `json:"attempted"`
	Matched   int              `json:"matched"`
	Matches   []CanonicalMatch `json:"matches,omitempty"`
}
