// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"strings"

	"github.com/pterm/pterm"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FormatRPCError formats a whistle service RPC failure in a user-friendly way.
// The raw gRPC status is kept at the bottom for debugging.
func FormatRPCError(err error) string {
	var builder strings.Builder

	builder.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Translation service error"))
	builder.WriteString("\n\n")

	st, ok := status.FromError(err)
	code := codes.Unknown
	if ok {
		code = st.Code()
	}

	switch code {
	case codes.Unavailable:
		builder.WriteString("The whistle service could not be reached.\n")
		builder.WriteString("Check that the service is running and that\n")
		builder.WriteString("NOTEBOOK_GRPC_HOST / NOTEBOOK_GRPC_PORT point at it.\n")
	case codes.DeadlineExceeded:
		builder.WriteString("The request timed out.\n")
		builder.WriteString("Raise NOTEBOOK_GRPC_TIMEOUT for large mappings.\n")
	case codes.Unauthenticated, codes.PermissionDenied:
		builder.WriteString("The service rejected the access token.\n")
		builder.WriteString("Run 'wstl auth set-token' with a fresh token.\n")
	case codes.InvalidArgument:
		builder.WriteString("The service rejected the request:\n")
		builder.WriteString("  " + st.Message() + "\n")
	default:
		builder.WriteString("The request failed unexpectedly.\n")
	}

	builder.WriteString("\n")
	builder.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Technical details: " + Mask(err.Error())))
	return builder.String()
}
