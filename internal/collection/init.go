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

package collection

import (
	"net/http"

	"github.com/migrata/compass/internal/appcatalog"
	"github.com/migrata/compass/internal/asset"
	assetstore "github.com/migrata/compass/internal/asset/store"
	"github.com/migrata/compass/internal/collection/engine"
	"github.com/migrata/compass/internal/gap"
	gapstore "github.com/migrata/compass/internal/gap/store"
	"github.com/migrata/compass/internal/questionnaire"
	qnrstore "github.com/migrata/compass/internal/questionnaire/store"
	"github.com/migrata/compass/internal/readiness"
	"github.com/migrata/compass/internal/system/middleware"
)

// Initialize creates and wires the collection workflow service components and
// registers the collection routes.
func Initialize(mux *http.ServeMux) CollectionServiceInterface {
	gapStore := gapstore.NewGapStore()
	questionnaireStore := qnrstore.NewQuestionnaireStore()
	assetStore := assetstore.NewAssetStore()

	gapService := gap.NewGapService(gapStore)
	gapResolver := gap.NewGapResolver(gapStore)
	recorder := questionnaire.NewResponseRecorder(questionnaireStore)
	ledger := questionnaire.NewLedger(questionnaireStore)
	gate := readiness.NewGate(questionnaireStore, assetStore)
	writeback := asset.NewWriteback(assetStore)
	appCatalog := appcatalog.NewCanonicalAppService()

	submissionEngine := engine.NewEngine(gapService, gapResolver, questionnaireStore,
		recorder, ledger, gate, writeback)
	collectionService := newCollectionService(submissionEngine, gapService, assetStore, appCatalog)
	handler := newCollectionHandler(collectionService)
	registerRoutes(mux, handler)
	return collectionService
}

func registerRoutes(mux *http.ServeMux, handler *collectionHandler) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "GET, POST, DELETE",
		AllowedHeaders:   "Content-Type, Authorization, " + headerClientAccountID + ", " + headerEngagementID + ", " + headerUserID,
		AllowCredentials: true,
	}

	mux.HandleFunc(middleware.WithCORS("POST /collection/flows",
		handler.HandleFlowCreateRequest, opts))
	mux.HandleFunc(middleware.WithCORS("GET /collection/flows/{id}",
		handler.HandleFlowGetRequest, opts))
	mux.HandleFunc(middleware.WithCORS("DELETE /collection/flows/{id}",
		handler.HandleFlowDeleteRequest, opts))
	mux.HandleFunc(middleware.WithCORS("POST /collection/flows/{id}/submit",
		handler.HandleSubmitRequest, opts))
	mux.HandleFunc(middleware.WithCORS("GET /collection/flows/{id}/status",
		handler.HandleWorkflowStatusRequest, opts))
	mux.HandleFunc(middleware.WithCORS("POST /collection/flows/{id}/advance",
		handler.HandleAdvanceRequest, opts))
	mux.HandleFunc(middleware.WithCORS("GET /collection/flows/{id}/gaps",
		handler.HandleGapListRequest, opts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /collection/flows/{id}",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts))
}
