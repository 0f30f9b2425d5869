package logging_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"rpimon-api/logging"
)

var _ = Describe("New", func() {
	It("filters below the configured level", func() {
		logger, err := logging.New("warn", false)
		Expect(err).ToNot(HaveOccurred())
		Expect(logger.Core().Enabled(zap.InfoLevel)).To(BeFalse())
		Expect(logger.Core().Enabled(zap.ErrorLevel)).To(BeTrue())
	})

	It("builds a development logger", func() {
		logger, err := logging.New("debug", true)
		Expect(err).ToNot(HaveOccurred())
		Expect(logger.Core().Enabled(zap.DebugLevel)).To(BeTrue())
	})

	It("rejects unknown levels", func() {
		_, err := logging.New("chatty", false)
		Expect(err).To(MatchError(ContainSubstring("parsing log level")))
	})
})
