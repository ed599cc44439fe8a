package pkg

import (
	cryptoRand "crypto/rand"
	"math/big"
	"strings"
)

const (
	alnumChars        = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	DefaultAccessCode = 6
)

// RandAlnum 生成 n 位字母数字访问码
func RandAlnum(n int) (string, error) {
	if n <= 0 {
		n = DefaultAccessCode
	}
	var b strings.Builder
	max := big.NewInt(int64(len(alnumChars)))
	for i := 0; i < n; i++ {
		x, err := cryptoRand.Int(cryptoRand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(alnumChars[x.Int64()])
	}
	return b.String(), nil
}
