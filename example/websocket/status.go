package main

import (
	"errors"
	"net/http"

	"github.com/leandrodaf/chordie/sdk/contracts"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, contracts.ErrPortRange):
		return http.StatusNotFound
	case errors.Is(err, contracts.ErrConnect):
		return http.StatusConflict
	default:
		return http.StatusServiceUnavailable
	}
}
