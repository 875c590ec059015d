// Copyright 2026 Sovereign-Mohawk Core Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command relm-server runs the relm demo HTTP API (internal/api).
package main

import (
	"log"
	"net/http"

	"github.com/sovereign-dp/relm/internal/api"
	"github.com/sovereign-dp/relm/internal/config"
	"github.com/sovereign-dp/relm/internal/presets"
)

func main() {
	cfg := config.Load()

	catalog := presets.Default()
	if cfg.PresetFile != "" {
		loaded, err := presets.Load(cfg.PresetFile)
		if err != nil {
			log.Fatalf("failed to load preset file %s: %v", cfg.PresetFile, err)
		}
		catalog = loaded
	}

	mux := http.NewServeMux()
	api.NewHandler(catalog).RegisterRoutes(mux)

	log.Printf("relm-server listening on %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, mux))
}
