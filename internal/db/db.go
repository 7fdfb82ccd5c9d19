package db

import (
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// Connect builds the Supabase client used by all repositories. The key is
// the service-role or anon key; every table access goes through PostgREST.
func Connect(supabaseURL, supabaseKey string) (*supabase.Client, error) {
	client, err := supabase.NewClient(supabaseURL, supabaseKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return client, nil
}
