/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package httpx plugs the fault dispatcher into net/http servers.
//
//	adv := advice.New(classify.New(catalog), logger)
//	resp := httpx.NewResponder(adv)
//	mux.Handle("POST /bookings", resp.Wrap(func(w http.ResponseWriter, r *http.Request) error {
//	    var in booking
//	    if err := httpx.DecodeJSON(w, r, &in, 0); err != nil {
//	        return err
//	    }
//	    ...
//	}))
//
// Handlers return errors; the Responder classifies them, logs once and
// writes the error envelope negotiated from the Accept header.
package httpx
