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

// Package asset provides the asset write-back stage of the collection pipeline.
package asset

import (
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/migrata/compass/internal/asset/constants"
	"github.com/migrata/compass/internal/asset/store"
	"github.com/migrata/compass/internal/system/config"
	"github.com/migrata/compass/internal/system/log"
	sysutils "github.com/migrata/compass/internal/system/utils"
)

const loggerComponentName = "AssetWriteback"

// WritebackItem is one resolved-gap value to push onto an asset record.
type WritebackItem struct {
	GapID     string
	AssetID   string
	Attribute string
	Value     string
}

// WritebackFailure records one item that could not be applied.
type WritebackFailure struct {
	GapID   string `json:"gap_id"`
	AssetID string `json:"asset_id,omitempty"`
	Reason  string `json:"reason"`
}

// WritebackResult reports how the write-back batch fared. A non-empty Failed
// list is a partial-success condition, never a fatal one.
type WritebackResult struct {
	Applied int                `json:"applied"`
	Failed  []WritebackFailure `json:"failed,omitempty"`
}

// WritebackInterface applies resolved-gap values to asset records.
type WritebackInterface interface {
	Apply(items []WritebackItem) WritebackResult
}

// writeback is the implementation of WritebackInterface.
type writeback struct {
	assetStore store.AssetStoreInterface
}

// NewWriteback creates a new write-back stage backed by the given asset store.
func NewWriteback(assetStore store.AssetStoreInterface) WritebackInterface {
	return &writeback{assetStore: assetStore}
}

// Apply pushes each item onto its asset, retrying transient failures per item.
// Failures are collected and reported; the already-committed gap and response
// state is never unwound from here.
func (w *writeback) Apply(items []WritebackItem) WritebackResult {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	result := WritebackResult{}
	for _, item := range items {
		if sysutils.IsBlank(item.AssetID) {
			logger.Warn("Skipping write-back for gap with no resolvable asset reference",
				log.String(log.LoggerKeyGapID, item.GapID))
			result.Failed = append(result.Failed, WritebackFailure{
				GapID:  item.GapID,
				Reason: "no resolvable asset reference",
			})
			continue
		}

		if err := w.applyWithRetry(item); err != nil {
			logger.Error("Asset write-back failed after retries",
				log.String(log.LoggerKeyGapID, item.GapID),
				log.String(log.LoggerKeyAssetID, item.AssetID),
				log.Error(err))
			result.Failed = append(result.Failed, WritebackFailure{
				GapID:   item.GapID,
				AssetID: item.AssetID,
				Reason:  err.Error(),
			})
			continue
		}

		result.Applied++
		logger.Debug("Applied resolved gap value to asset",
			log.String(log.LoggerKeyAssetID, item.AssetID),
			log.String("attribute", item.Attribute))
	}
	return result
}

// applyWithRetry applies one item under the configured exponential backoff policy.
func (w *writeback) applyWithRetry(item WritebackItem) error {
	operation := func() error {
		return w.applyItem(item)
	}
	return backoff.Retry(operation, newBackoffPolicy())
}

// applyItem routes the value to the dedicated column for the two well-known
// attributes and to the custom attribute document for everything else.
func (w *writeback) applyItem(item WritebackItem) error {
	switch item.Attribute {
	case constants.AttributeBusinessCriticality:
		return w.assetStore.UpdateCriticality(item.AssetID, item.Value)
	case constants.AttributeEnvironment:
		return w.assetStore.UpdateEnvironment(item.AssetID, item.Value)
	default:
		return w.assetStore.SetCustomAttribute(item.AssetID, item.Attribute, item.Value)
	}
}

// newBackoffPolicy builds the retry policy from the deployment configuration.
func newBackoffPolicy() backoff.BackOff {
	cfg := config.GetCompassRuntime().Config.Collection.Writeback

	policy := backoff.NewExponentialBackOff()
	if cfg.InitialDelayMs > 0 {
		policy.InitialInterval = time.Duration(cfg.InitialDelayMs) * time.Millisecond
	}
	if cfg.MaxElapsedTimeS > 0 {
		policy.MaxElapsedTime = time.Duration(cfg.MaxElapsedTimeS) * time.Second
	}

	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 3
	}
	return backoff.WithMaxRetries(policy, uint64(maxRetries))
}
