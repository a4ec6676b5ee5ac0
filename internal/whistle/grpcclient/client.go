// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package grpcclient provides the gRPC-backed implementation of the whistle
// Service interface. The service is commonly deployed next to the notebook
// kernel, so plaintext localhost is the default; TLS can be enabled for
// remote deployments. Methods are invoked by their literal proto names under
// the wstlservice package, with requests encoded by the JSON codec.
package grpcclient

import (
	"context"
	"crypto/tls"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"wstl/notebook/internal/errors"
	"wstl/notebook/internal/whistle"
)

const servicePrefix = "/wstlservice.WhistleService/"

// Options configures the connection to the whistle service.
type Options struct {
	// Target is the host:port of the service.
	Target string
	// AccessToken, when non-empty, is sent as bearer metadata on every call.
	AccessToken string
	// Timeout bounds each RPC. Zero means no deadline.
	Timeout time.Duration
	// UseTLS dials with TLS instead of plaintext.
	UseTLS bool
}

// Client implements whistle.Service over a gRPC connection.
type Client struct {
	conn        *grpc.ClientConn
	accessToken string
	timeout     time.Duration
}

var _ whistle.Service = (*Client)(nil)

// Connect dials the whistle service.
func Connect(ctx context.Context, opts Options) (*Client, error) {
	creds := insecure.NewCredentials()
	if opts.UseTLS {
		host := opts.Target
		if h, _, err := net.SplitHostPort(opts.Target); err == nil {
			host = h
		}
		creds = credentials.NewTLS(&tls.Config{ServerName: host, MinVersion: tls.VersionTLS12})
	}

	dctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	conn, err := grpc.DialContext(dctx, opts.Target, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, errors.Wrap(errors.Unavailable, "unable to dial "+opts.Target, err)
	}
	return &Client{conn: conn, accessToken: opts.AccessToken, timeout: opts.Timeout}, nil
}

func (c *Client) Close() error { return c.conn.Close() }

// invoke performs a unary call by its literal proto method name. The Python
// reference server registers no generated Go stubs, so the method string is
// spelled out here, mirroring how the service names it.
func (c *Client) invoke(ctx context.Context, method string, req, resp any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if c.accessToken != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+c.accessToken)
	}
	return c.conn.Invoke(ctx, servicePrefix+method, req, resp, grpc.CallContentSubtype(codecName))
}

func (c *Client) GetOrCreateIncrementalSession(ctx context.Context, req *whistle.CreateIncrementalSessionRequest) (*whistle.IncrementalSessionResponse, error) {
	resp := &whistle.IncrementalSessionResponse{}
	if err := c.invoke(ctx, "GetOrCreateIncrementalSession", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetIncrementalTransform(ctx context.Context, req *whistle.IncrementalTransformRequest) (*whistle.TransformResponse, error) {
	resp := &whistle.TransformResponse{}
	if err := c.invoke(ctx, "GetIncrementalTransform", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) DeleteIncrementalSession(ctx context.Context, req *whistle.DeleteIncrementalSessionRequest) (*whistle.DeleteIncrementalSessionResponse, error) {
	resp := &whistle.DeleteIncrementalSessionResponse{}
	if err := c.invoke(ctx, "DeleteIncrementalSession", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) FhirValidate(ctx context.Context, req *whistle.ValidationRequest) (*whistle.ValidationResponse, error) {
	resp := &whistle.ValidationResponse{}
	if err := c.invoke(ctx, "FhirValidate", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
