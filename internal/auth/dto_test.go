package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("LoginDTO", func() {
	ginkgo.Describe("Validate", func() {
		ginkgo.It("should accept well-formed credentials", func() {
			dto := LoginDTO{Email: "inspector@acme.com", Password: "secret"}

			gomega.Expect(dto.Validate()).To(gomega.Succeed())
		})

		ginkgo.It("should treat a whitespace-only email as missing", func() {
			dto := LoginDTO{Email: "   ", Password: "secret"}

			err := dto.Validate()

			gomega.Expect(err).To(gomega.MatchError("email is required"))
		})

		ginkgo.It("should reject an email without an @", func() {
			dto := LoginDTO{Email: "not-an-address", Password: "secret"}

			err := dto.Validate()

			gomega.Expect(err).To(gomega.MatchError("email is not a valid address"))
		})

		ginkgo.It("should reject a missing password", func() {
			dto := LoginDTO{Email: "inspector@acme.com"}

			err := dto.Validate()

			gomega.Expect(err).To(gomega.MatchError("password is required"))
		})
	})
})

var _ = ginkgo.Describe("RefreshTokenDTO", func() {
	ginkgo.Describe("Validate", func() {
		ginkgo.It("should reject a blank token", func() {
			dto := RefreshTokenDTO{RefreshToken: " \t"}

			err := dto.Validate()

			gomega.Expect(err).To(gomega.MatchError("refresh_token is required"))
		})

		ginkgo.It("should accept a non-empty token", func() {
			dto := RefreshTokenDTO{RefreshToken: "some-refresh-token"}

			gomega.Expect(dto.Validate()).To(gomega.Succeed())
		})
	})
})
