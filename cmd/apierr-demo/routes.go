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

package main

import (
	"errors"
	"net/http"

	"dirpx.dev/apierr"
	"dirpx.dev/apierr/advice"
	"dirpx.dev/apierr/authx"
	"dirpx.dev/apierr/code"
	"dirpx.dev/apierr/envelope"
	"dirpx.dev/apierr/fault"
	"dirpx.dev/apierr/ginx"
	"dirpx.dev/apierr/httpx"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	pkgerrors "github.com/pkg/errors"
)

type signup struct {
	Name  string `json:"name" binding:"required" validate:"required"`
	Email string `json:"email" binding:"required,email" validate:"required,email"`
	Age   int    `json:"age" binding:"omitempty,min=18" validate:"omitempty,min=18"`
}

type listing struct {
	Page int `form:"page" json:"page" binding:"omitempty,min=1"`
}

type show struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Seats int    `json:"seats"`
}

var shows = map[string]show{
	"hamlet":  {ID: "hamlet", Title: "Hamlet", Seats: 12},
	"macbeth": {ID: "macbeth", Title: "Macbeth"},
}

var errStorage = errors.New("dial tcp 10.0.0.5:5432: connection refused")

type routes struct {
	adv          *advice.Advice
	auth         *authx.Authenticator
	prefix       string
	idHeader     string
	maxBodyBytes int64
	validate     *validator.Validate
}

func newRouter(rt *routes) *gin.Engine {
	r := gin.New()
	r.Use(ginx.Errors(rt.adv, ginx.WithRequestIDHeader(rt.idHeader)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/users", rt.createUser)
	r.GET("/shows", rt.listShows)
	r.GET("/shows/:id", rt.getShow)
	r.POST("/shows/:id/book", rt.book)
	r.GET("/boom", func(*gin.Context) { panic("boom") })
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(pkgerrors.Wrap(errStorage, "load shows"))
	})

	// the same signup on plain net/http, decoded with DecodeJSON
	plain := httpx.NewResponder(rt.adv, httpx.WithRequestIDHeader(rt.idHeader))
	r.POST("/plain/users", gin.WrapH(plain.Wrap(rt.createUserPlain)))

	private := r.Group("/private", ginx.RequireBearer(rt.auth))
	private.GET("", func(c *gin.Context) {
		claims, _ := ginx.Claims(c)
		c.JSON(http.StatusOK, gin.H{"subject": claims.Subject, "roles": claims.Roles})
	})
	private.GET("/admin", ginx.RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin": true})
	})
	return r
}

func (rt *routes) createUser(c *gin.Context) {
	var in signup
	if err := ginx.BindJSON(c, &in); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, in)
}

func (rt *routes) createUserPlain(w http.ResponseWriter, r *http.Request) error {
	var in signup
	if err := httpx.DecodeJSON(w, r, &in, rt.maxBodyBytes); err != nil {
		return err
	}
	if err := rt.validate.Struct(in); err != nil {
		return fault.FromValidator(err, fault.Body)
	}
	body, err := jsoniter.Marshal(in)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", httpx.MediaTypeJSON)
	w.WriteHeader(http.StatusCreated)
	_, err = w.Write(body)
	return err
}

func (rt *routes) listShows(c *gin.Context) {
	var q listing
	if err := ginx.BindQuery(c, &q); err != nil {
		_ = c.Error(err)
		return
	}
	out := make([]show, 0, len(shows))
	for _, s := range shows {
		out = append(out, s)
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "page": max(q.Page, 1)})
}

func (rt *routes) getShow(c *gin.Context) {
	s, err := rt.find(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (rt *routes) book(c *gin.Context) {
	s, err := rt.find(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if s.Seats == 0 {
		key := code.Key(rt.prefix, http.StatusConflict, "sold-out")
		_ = c.Error(apierr.E(http.StatusConflict, key, "Sold Out",
			apierr.WithDetailOption(s.Title+" has no seats left."),
			apierr.WithKeysOption(string(key), key.Detail()),
			apierr.WithMetaOption("show", s.ID),
		))
		return
	}
	c.Status(http.StatusNoContent)
}

func (rt *routes) find(id string) (show, error) {
	s, ok := shows[id]
	if !ok {
		key := code.Key(rt.prefix, http.StatusNotFound, "show")
		return show{}, apierr.E(http.StatusNotFound, key, "Show Not Found",
			apierr.WithKeysOption(string(key), key.Detail()),
			apierr.WithSourceOption(envelope.Parameter("id")),
		)
	}
	return s, nil
}
