// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rollupvm

import (
	"net/http"

	"github.com/gorilla/rpc/v2"

	cjson "github.com/ava-labs/avalanchego/utils/json"
)

func newServer() *rpc.Server {
	server := rpc.NewServer()
	codec := cjson.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	return server
}

// CreateHandlers returns a map where:
// Keys: The path extension for this chain's API (empty in this case)
// Values: The handler for the API
func (c *Chain) CreateHandlers() (map[string]http.Handler, error) {
	server := newServer()
	// name this service "rollup"
	return map[string]http.Handler{
		"": server,
	}, server.RegisterService(&Service{chain: c}, "rollup")
}

// CreateStaticHandlers returns a map where:
// Keys: The path extension for this chain's static API
// Values: The handler for that static API
func CreateStaticHandlers() (map[string]http.Handler, error) {
	server := newServer()
	return map[string]http.Handler{
		"": server,
	}, server.RegisterService(CreateStaticService(), "rollup")
}
