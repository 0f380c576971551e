package httpserver_test

import (
	"context"
	"io"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/question-paper/internal/httpserver"
)

var _ = Describe("HTTP Server", func() {
	noop := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	Context("server creation", func() {
		DescribeTable("addresses",
			func(addr string, valid bool) {
				srv, err := httpserver.New(addr, noop, httpserver.Timeouts{})
				if valid {
					Expect(err).NotTo(HaveOccurred())
					Expect(srv).NotTo(BeNil())
					Expect(srv.Addr()).To(Equal(addr))
				} else {
					Expect(err).To(HaveOccurred())
					Expect(srv).To(BeNil())
				}
			},
			Entry("host name", "localhost:9999", true),
			Entry("IP address", "127.0.0.1:9999", true),
			Entry("port only", ":9999", true),
			Entry("too many colons", "invalid:host:port", false),
			Entry("missing port", "localhost", false),
			Entry("empty port", "localhost:", false),
			Entry("bad host", "bad_host!:9999", false),
		)
	})

	Context("server lifecycle", func() {
		var testServer *httpserver.Server

		AfterEach(func() {
			if testServer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
				defer cancel()
				_ = testServer.Shutdown(ctx)
			}
		})

		It("starts and handles requests", func() {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("test"))
			})
			var err error
			testServer, err = httpserver.New("127.0.0.1:19999", handler, httpserver.Timeouts{Shutdown: time.Second})
			Expect(err).NotTo(HaveOccurred())

			go func() {
				testServer.Start()
			}()

			var resp *http.Response
			Eventually(func() error {
				resp, err = http.Get("http://127.0.0.1:19999")
				return err
			}).Should(Succeed())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			body, _ := io.ReadAll(resp.Body)
			Expect(string(body)).To(Equal("test"))
		})

		It("shuts down gracefully", func() {
			var err error
			testServer, err = httpserver.New("127.0.0.1:19998", noop, httpserver.Timeouts{})
			Expect(err).NotTo(HaveOccurred())

			done := make(chan error, 1)
			go func() {
				done <- testServer.Start()
			}()
			time.Sleep(100 * time.Millisecond)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			Expect(testServer.Shutdown(ctx)).To(Succeed())
			Eventually(done).Should(Receive(BeNil()))
		})
	})
})
