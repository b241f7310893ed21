package zcsdk

// Helpers for optional request fields.

func String(v string) *string { return &v }

func Bool(v bool) *bool { return &v }

func Int(v int) *int { return &v }
