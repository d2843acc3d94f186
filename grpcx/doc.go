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

// Package grpcx exposes the error-handling advice to gRPC servers.
//
// Install UnaryServerInterceptor first so that it sees the faults of every
// interceptor after it:
//
//	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
//	    grpcx.UnaryServerInterceptor(adv, m, "shop.example.com"),
//	    grpcx.UnaryAuthInterceptor(authenticator),
//	))
package grpcx
