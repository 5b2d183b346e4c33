package fixture

import "testing"

func TestIsCompatibleVersion_SameMajor(t *testing.T) {
	ok, err := IsCompatibleVersion("v0.1.0", "v0.3.0")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !ok {
		t.Error("Versions sharing a major should be compatible")
	}
}

func TestIsCompatibleVersion_DifferentMajor(t *testing.T) {
	ok, err := IsCompatibleVersion("v1.0.0", "v0.3.0")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ok {
		t.Error("Versions with different majors should be incompatible")
	}
}

func TestIsCompatibleVersion_Invalid(t *testing.T) {
	if _, err := IsCompatibleVersion("banana", Version); err == nil {
		t.Error("Expected error for invalid client version")
	}
	if _, err := IsCompatibleVersion(Version, "banana"); err == nil {
		t.Error("Expected error for invalid server version")
	}
}

func TestVersionIsValidSemver(t *testing.T) {
	ok, err := IsCompatibleVersion(Version, Version)
	if err != nil {
		t.Fatalf("Version constant is not valid semver: %v", err)
	}
	if !ok {
		t.Error("Version should be compatible with itself")
	}
}
