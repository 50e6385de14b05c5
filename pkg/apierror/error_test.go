package apierror

import "testing"

func TestError_Message(t *testing.T) {
	e := WithData(CodeInvalidParams, "Invalid params.", "No permissions to referred object.")
	want := "[-32602] Invalid params.: No permissions to referred object."
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
	if New(CodeInternal, "Internal error.").Error() != "[-32603] Internal error." {
		t.Errorf("unexpected message without data: %q", New(CodeInternal, "Internal error.").Error())
	}
}

func TestError_IsAuthFailure(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want bool
	}{
		{"session terminated", InvalidParams("Session terminated, re-login, please."), true},
		{"not authorized", InvalidParams("Not authorized."), true},
		{"other params error", InvalidParams("Invalid parameter \"/1\": unexpected parameter \"foo\"."), false},
		{"internal", Internal("Session terminated"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.IsAuthFailure(); got != tt.want {
				t.Errorf("IsAuthFailure() = %v, want %v", got, tt.want)
			}
		})
	}
}
