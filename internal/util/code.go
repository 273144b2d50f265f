package util

import "crypto/rand"

// 혼동되기 쉬운 문자(0/O, 1/I/L)를 제외한 알파벳
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateSurveyCode 설문 공개 코드를 생성한다. QR/링크로 배포되는 값이라
// 사람이 읽고 입력하기 쉬운 문자만 사용한다.
func GenerateSurveyCode(length int) string {
	if length <= 0 {
		length = 6
	}
	b := make([]byte, length)
	rand.Read(b)
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b)
}
