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

package config

import "sync"

// CompassRuntime holds the runtime configuration for the Compass server.
type CompassRuntime struct {
	CompassHome string `yaml:"compass_home"`
	Config      Config `yaml:"config"`
}

var (
	runtimeConfig *CompassRuntime
	once          sync.Once
)

// InitializeCompassRuntime initializes the CompassRuntime configuration.
func InitializeCompassRuntime(compassHome string, config *Config) error {
	once.Do(func() {
		runtimeConfig = &CompassRuntime{
			CompassHome: compassHome,
			Config:      *config,
		}
	})

	return nil
}

// GetCompassRuntime returns the CompassRuntime configuration.
func GetCompassRuntime() *CompassRuntime {
	if runtimeConfig == nil {
		panic("CompassRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetCompassRuntime resets the CompassRuntime.
// This should only be used in tests to reset the singleton state.
func ResetCompassRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
