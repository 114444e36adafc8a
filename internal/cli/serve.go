package cli

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"

	"github.com/quic-go/quic-go/http3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kvernberg/lovchat/internal/proxy"
	"github.com/kvernberg/lovchat/internal/server"
	"github.com/kvernberg/lovchat/internal/webtls"
)

func newServeCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the chat web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			defer app.Close()
			v := app.Cfg
			if listen != "" {
				v.Set("http_addr", listen)
			}
			addr := v.GetString("http_addr")
			if addr == "" {
				addr = ":8080"
			}

			srv := server.New(v, app.Bot, func(ctx context.Context) error {
				return refreshIndex(ctx, app, false)
			})
			var handler http.Handler = srv.Router()

			routes, err := proxy.ParseRoutes(v.GetStringMapString("proxy.routes"))
			if err != nil {
				return err
			}
			if routes.Len() > 0 {
				handler = routes.Wrap(handler)
				app.Log.Printf("mounted %d proxy route(s)", routes.Len())
			}

			tlsConf, challenge, err := buildTLS(v)
			if err != nil {
				return err
			}

			if tlsConf == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "LovChat listening on http://%s\n", addr)
				return (&http.Server{Addr: addr, Handler: handler}).ListenAndServe()
			}

			if challenge != nil {
				go func() {
					if err := http.ListenAndServe(":80", challenge); err != nil {
						app.Log.Printf("http-01 listener: %v", err)
					}
				}()
			}

			// TCP for HTTP/1.1+2, UDP on the same port for HTTP/3.
			httpSrv := &http.Server{Addr: addr, Handler: handler, TLSConfig: tlsConf}
			h3Srv := &http3.Server{Addr: addr, Handler: handler, TLSConfig: tlsConf}
			errc := make(chan error, 2)
			go func() { errc <- httpSrv.ListenAndServeTLS("", "") }()
			go func() { errc <- h3Srv.ListenAndServe() }()
			fmt.Fprintf(cmd.OutOrStdout(), "LovChat listening on https://%s (h3 enabled)\n", addr)
			return <-errc
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (override config http_addr)")
	return cmd
}

// buildTLS picks a TLS source from config: CertMagic when tls.domain is set,
// a PEM pair when tls.cert_file/tls.key_file are set, a self-signed cert when
// tls.self_signed is true, otherwise plain HTTP.
func buildTLS(v *viper.Viper) (*tls.Config, http.Handler, error) {
	switch {
	case v.GetString("tls.domain") != "":
		return webtls.BuildCertMagicTLS(webtls.CertMagicConfig{
			Domain:        v.GetString("tls.domain"),
			Email:         v.GetString("tls.email"),
			EnableHTTP01:  true,
			EnableTLSALPN: true,
		})
	case v.GetString("tls.cert_file") != "" || v.GetString("tls.key_file") != "":
		conf, err := webtls.BuildFileTLS(v.GetString("tls.cert_file"), v.GetString("tls.key_file"))
		return conf, nil, err
	case v.GetBool("tls.self_signed"):
		conf, err := webtls.SelfSignedTLS()
		return conf, nil, err
	default:
		return nil, nil, nil
	}
}
