// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package relay

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/optakt/near-go/encoding/borsh"
	"github.com/optakt/near-go/failure"
	"github.com/optakt/near-go/models/near"
)

// Relayer relays signed delegate actions.
type Relayer interface {
	ID() near.AccountID
	Relay(signed *near.SignedDelegateAction) (*near.ExecutionOutcome, error)
	Status(hash near.Hash, senderID near.AccountID, level near.TxExecutionStatus) (*near.ExecutionOutcome, error)
}

// Controller implements the HTTP API of the relayer.
type Controller struct {
	relay    Relayer
	validate *validator.Validate
}

// NewController creates the controller for the relayer.
func NewController(relay Relayer) *Controller {
	c := Controller{
		relay:    relay,
		validate: newRequestValidator(),
	}
	return &c
}

// Register adds the routes of the controller to the server.
func (c *Controller) Register(server *echo.Echo) {
	server.POST("/relay", c.Relay)
	server.GET("/tx/:hash", c.Transaction)
	server.GET("/health", c.Health)
}

// Relay implements the `POST /relay` endpoint.
func (c *Controller) Relay(ctx echo.Context) error {

	var req RelayRequest
	err := ctx.Bind(&req)
	if err != nil {
		return invalidRequest(err)
	}
	err = validate(c.validate, req)
	if err != nil {
		return invalidRequest(err)
	}

	data, err := base64.StdEncoding.DecodeString(req.SignedDelegateAction)
	if err != nil {
		return invalidRequest(err)
	}
	signed, err := borsh.DecodeSignedDelegateAction(data)
	if err != nil {
		return relayError(failure.InvalidPayload{
			Description: failure.NewDescription("could not decode signed delegate action", failure.WithErr(err)),
			Encoding:    "borsh",
		})
	}

	outcome, err := c.relay.Relay(signed)
	var failed failure.ExecutionFailed
	if errors.As(err, &failed) && outcome != nil {
		return ctx.JSON(http.StatusOK, response(outcome))
	}
	if err != nil {
		return relayError(err)
	}

	return ctx.JSON(http.StatusOK, response(outcome))
}

// Transaction implements the `GET /tx/:hash` endpoint.
func (c *Controller) Transaction(ctx echo.Context) error {

	var req StatusRequest
	err := ctx.Bind(&req)
	if err != nil {
		return invalidRequest(err)
	}
	err = validate(c.validate, req)
	if err != nil {
		return invalidRequest(err)
	}

	hash, _ := near.ParseHash(req.Hash)
	level := near.DefaultWaitUntil
	if req.WaitUntil != "" {
		level, _ = near.ParseTxExecutionStatus(req.WaitUntil)
	}

	outcome, err := c.relay.Status(hash, near.AccountID(req.Sender), level)
	if err != nil {
		return relayError(err)
	}

	return ctx.JSON(http.StatusOK, response(outcome))
}

// Health implements the `GET /health` endpoint.
func (c *Controller) Health(ctx echo.Context) error {
	res := HealthResponse{
		Status:  "ok",
		Relayer: c.relay.ID(),
	}
	return ctx.JSON(http.StatusOK, res)
}

func response(outcome *near.ExecutionOutcome) RelayResponse {
	return RelayResponse{
		Hash:      outcome.Transaction.Hash,
		Status:    outcome.FinalExecutionStatus,
		Failure:   outcome.FailureKind(),
		Executors: outcome.Executors(),
		Logs:      outcome.Logs(),
		Outcome:   outcome,
	}
}
