package ledger

import (
	"strings"
	"testing"

	"subwaylog/pkg/domain"
)

func TestEncodeDecodeCookieValueRoundTrip(t *testing.T) {
	rides := []domain.RideRecord{ride("r1", "4210"), ride("r2", "1301")}
	value, err := EncodeCookieValue(rides)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded := DecodeCookieValue(value)
	if len(decoded) != 2 || decoded[0].ID != "r1" || decoded[1].TrainNumber != "1301" {
		t.Fatalf("round trip lost data: %+v", decoded)
	}
}

func TestEncodeCookieValueIsPercentEncoded(t *testing.T) {
	value, err := EncodeCookieValue([]domain.RideRecord{ride("r1", "4210")})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, forbidden := range []string{"\"", "{", "[", ",", ";", " "} {
		if strings.Contains(value, forbidden) {
			t.Fatalf("encoded value contains %q: %s", forbidden, value)
		}
	}
}

func TestEncodeCookieValueNilRides(t *testing.T) {
	value, err := EncodeCookieValue(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if DecodeCookieValue(value) == nil {
		t.Fatalf("expected empty sequence, got nil")
	}
	if got := DecodeCookieValue(value); len(got) != 0 {
		t.Fatalf("expected empty sequence, got %+v", got)
	}
}

func TestDecodeCookieValueNeverFails(t *testing.T) {
	for _, value := range []string{
		"",
		"%ZZ",
		"not-json",
		"%7B%22id%22%3A%22x%22%7D", // JSON object, not an array
		"null",
		"42",
	} {
		if got := DecodeCookieValue(value); got == nil || len(got) != 0 {
			t.Fatalf("value %q: expected empty sequence, got %#v", value, got)
		}
	}
}

func TestCookieAttributes(t *testing.T) {
	if CookieName != "nyc_rides" {
		t.Fatalf("unexpected cookie name %q", CookieName)
	}
	if CookieMaxAgeSeconds != 34560000 {
		t.Fatalf("unexpected max age %d", CookieMaxAgeSeconds)
	}
	if CookiePath != "/" {
		t.Fatalf("unexpected path %q", CookiePath)
	}
}
