package entities

import "testing"

func TestAdminPolicy(t *testing.T) {
	policy := AdminPolicy{IDs: []string{"ops-lead"}, EmailDomain: "@musubime.jp"}
	cases := []struct {
		identifiers []string
		want        Role
	}{
		{[]string{"ops-lead"}, RoleAdmin},
		{[]string{" OPS-LEAD "}, RoleAdmin},
		{[]string{"hana@Musubime.jp"}, RoleAdmin},
		{[]string{"INF-001", "sakura@example.com"}, RoleInfluencer},
		{[]string{"INF-001", "staff@musubime.jp"}, RoleAdmin},
		{[]string{"someone@notmusubime.jp"}, RoleInfluencer},
		{[]string{""}, RoleInfluencer},
	}
	for _, tc := range cases {
		if got := policy.Role(tc.identifiers...); got != tc.want {
			t.Fatalf("Role(%v) = %s, want %s", tc.identifiers, got, tc.want)
		}
	}
}

func TestAdminPolicyWithoutDomain(t *testing.T) {
	policy := AdminPolicy{}
	if policy.IsAdmin("anyone@musubime.jp") {
		t.Fatalf("expected no admin without configuration")
	}
}
