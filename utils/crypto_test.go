package utils

import "testing"

func TestSignAndVerifyHMAC(t *testing.T) {
	data := []byte(`{"id":"test"}`)
	signature := SignHMAC(data, "secret")

	if signature == "" {
		t.Fatal("подпись не должна быть пустой")
	}
	if !VerifyHMAC(data, signature, "secret") {
		t.Error("подпись должна проходить проверку с тем же ключом")
	}
	if VerifyHMAC(data, signature, "other") {
		t.Error("подпись не должна проходить проверку с другим ключом")
	}
	if VerifyHMAC([]byte(`{"id":"forged"}`), signature, "secret") {
		t.Error("подпись не должна проходить проверку для измененных данных")
	}
}
